package gateway

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Image is a captured or uploaded photo in its original encoding.
type Image struct {
	MIMEType string
	Data     []byte
}

func LoadImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("read image %s: %w", path, err)
	}
	return NewImage(data)
}

// NewImage sniffs the content type of raw bytes and rejects anything that is
// not an image.
func NewImage(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, fmt.Errorf("image is empty")
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return Image{}, fmt.Errorf("unsupported image type %q", mime)
	}
	return Image{MIMEType: mime, Data: data}, nil
}

// ParseDataURL accepts either a data URL ("data:image/jpeg;base64,...") or a
// bare base64 payload, which is assumed to be JPEG.
func ParseDataURL(s string) (Image, error) {
	s = strings.TrimSpace(s)
	mime := "image/jpeg"
	payload := s
	if head, rest, ok := strings.Cut(s, ","); ok && strings.HasPrefix(head, "data:") {
		payload = rest
		meta := strings.TrimPrefix(head, "data:")
		if !strings.HasSuffix(meta, ";base64") {
			return Image{}, fmt.Errorf("data URL is not base64 encoded")
		}
		if m := strings.TrimSuffix(meta, ";base64"); m != "" {
			mime = m
		}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("decode image payload: %w", err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("image is empty")
	}
	return Image{MIMEType: mime, Data: data}, nil
}

func (img Image) inline() *InlineData {
	return &InlineData{
		MIMEType: img.MIMEType,
		Data:     base64.StdEncoding.EncodeToString(img.Data),
	}
}
