package gateway

import "context"

// Backend sends one generation request to the analysis service and returns
// the model's text output.
type Backend interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type GenerateRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	InlineData *InlineData `json:"inlineData,omitempty"`
	Text       string      `json:"text,omitempty"`
}

type InlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// GenerationConfig carries the decoding parameters. Temperature is always
// sent, including zero.
type GenerationConfig struct {
	Temperature      float64  `json:"temperature"`
	TopP             *float64 `json:"topP,omitempty"`
	TopK             *int     `json:"topK,omitempty"`
	Seed             *int     `json:"seed,omitempty"`
	ResponseMIMEType string   `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema  `json:"responseSchema,omitempty"`
}

type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

const (
	deterministicSeed = 42
	adviceTemperature = 0.2
)

// deterministicConfig pins sampling so identical inputs give identical outputs.
func deterministicConfig(schema *Schema) GenerationConfig {
	topP := 1.0
	topK := 1
	seed := deterministicSeed
	return GenerationConfig{
		Temperature:      0,
		TopP:             &topP,
		TopK:             &topK,
		Seed:             &seed,
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
}

func adviceConfig() GenerationConfig {
	seed := deterministicSeed
	return GenerationConfig{Temperature: adviceTemperature, Seed: &seed}
}

func macrosSchema(described bool) *Schema {
	s := &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"protein": {Type: "INTEGER"},
			"carbs":   {Type: "INTEGER"},
			"fat":     {Type: "INTEGER"},
		},
		Required: []string{"protein", "carbs", "fat"},
	}
	if described {
		s.Properties["protein"].Description = "Protein in grams"
		s.Properties["carbs"].Description = "Carbohydrates in grams"
		s.Properties["fat"].Description = "Fat in grams"
	}
	return s
}

func analysisSchema() *Schema {
	return &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"foodName":        {Type: "STRING", Description: "Name of the food identified"},
			"calories":        {Type: "INTEGER", Description: "Estimated calories (standard value)"},
			"macros":          macrosSchema(true),
			"ingredients":     {Type: "ARRAY", Items: &Schema{Type: "STRING"}, Description: "List of identified ingredients"},
			"healthTip":       {Type: "STRING", Description: "A short, actionable health tip about this food"},
			"confidenceScore": {Type: "INTEGER", Description: "Confidence score from 0 to 100"},
		},
		Required: []string{"foodName", "calories", "macros", "ingredients", "healthTip", "confidenceScore"},
	}
}

func recalculationSchema() *Schema {
	return &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"calories":  {Type: "INTEGER"},
			"macros":    macrosSchema(false),
			"healthTip": {Type: "STRING"},
		},
		Required: []string{"calories", "macros", "healthTip"},
	}
}
