package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
)

var analysisFields = []string{"foodName", "calories", "macros", "ingredients", "healthTip", "confidenceScore"}

// decodeAnalysis validates a full analysis response. Every field must be
// present and well-typed; nothing partial is returned.
func decodeAnalysis(text string) (model.Analysis, error) {
	fields, err := decodeObject(text)
	if err != nil {
		return model.Analysis{}, err
	}
	for _, name := range analysisFields {
		if !present(fields, name) {
			return model.Analysis{}, fmt.Errorf("missing field %q", name)
		}
	}

	var a model.Analysis
	if err := json.Unmarshal(fields["foodName"], &a.FoodName); err != nil {
		return model.Analysis{}, fmt.Errorf("field foodName: %w", err)
	}
	a.FoodName = strings.TrimSpace(a.FoodName)
	if a.FoodName == "" {
		return model.Analysis{}, fmt.Errorf("field foodName is empty")
	}
	if a.Calories, err = decodeNonNegative("calories", fields["calories"]); err != nil {
		return model.Analysis{}, err
	}
	if a.Macros, err = decodeMacros(fields["macros"]); err != nil {
		return model.Analysis{}, err
	}
	if err := json.Unmarshal(fields["ingredients"], &a.Ingredients); err != nil {
		return model.Analysis{}, fmt.Errorf("field ingredients: %w", err)
	}
	sort.Strings(a.Ingredients)
	if err := json.Unmarshal(fields["healthTip"], &a.HealthTip); err != nil {
		return model.Analysis{}, fmt.Errorf("field healthTip: %w", err)
	}
	if a.ConfidenceScore, err = decodeNonNegative("confidenceScore", fields["confidenceScore"]); err != nil {
		return model.Analysis{}, err
	}
	if a.ConfidenceScore > 100 {
		return model.Analysis{}, fmt.Errorf("field confidenceScore out of range: %d", a.ConfidenceScore)
	}
	return a, nil
}

// decodePartial validates a recalculation response. Absent fields stay nil;
// present fields must be well-typed.
func decodePartial(text string) (model.PartialAnalysis, error) {
	fields, err := decodeObject(text)
	if err != nil {
		return model.PartialAnalysis{}, err
	}
	var p model.PartialAnalysis
	if present(fields, "calories") {
		v, err := decodeNonNegative("calories", fields["calories"])
		if err != nil {
			return model.PartialAnalysis{}, err
		}
		p.Calories = &v
	}
	if present(fields, "macros") {
		m, err := decodeMacros(fields["macros"])
		if err != nil {
			return model.PartialAnalysis{}, err
		}
		p.Macros = &m
	}
	if present(fields, "healthTip") {
		var tip string
		if err := json.Unmarshal(fields["healthTip"], &tip); err != nil {
			return model.PartialAnalysis{}, fmt.Errorf("field healthTip: %w", err)
		}
		if tip = strings.TrimSpace(tip); tip != "" {
			p.HealthTip = &tip
		}
	}
	return p, nil
}

func decodeObject(text string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &fields); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("response is not a JSON object")
	}
	return fields, nil
}

func present(fields map[string]json.RawMessage, name string) bool {
	raw, ok := fields[name]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeNonNegative(name string, raw json.RawMessage) (int, error) {
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("field %s must be >= 0, got %d", name, v)
	}
	return v, nil
}

// decodeMacros requires exactly protein, carbs and fat.
func decodeMacros(raw json.RawMessage) (model.Macros, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return model.Macros{}, fmt.Errorf("field macros is not an object")
	}
	if len(fields) != 3 {
		return model.Macros{}, fmt.Errorf("field macros must have exactly protein, carbs and fat")
	}
	var m model.Macros
	var err error
	for name, dst := range map[string]*int{"protein": &m.Protein, "carbs": &m.Carbs, "fat": &m.Fat} {
		if !present(fields, name) {
			return model.Macros{}, fmt.Errorf("missing field macros.%s", name)
		}
		if *dst, err = decodeNonNegative("macros."+name, fields[name]); err != nil {
			return model.Macros{}, err
		}
	}
	return m, nil
}
