package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/store"
)

type ManualEntryInput struct {
	Name     string
	Calories int
	Protein  int
	Carbs    int
	Fat      int
}

// AddManualEntry logs a food item typed in by the user. Manual items carry no
// model uncertainty, no ingredients and no image.
func AddManualEntry(st *store.Store, in ManualEntryInput, now time.Time) (model.FoodEntry, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.FoodEntry{}, fmt.Errorf("entry name is required")
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"calories", in.Calories},
		{"protein", in.Protein},
		{"carbs", in.Carbs},
		{"fat", in.Fat},
	} {
		if err := validateNonNegativeInt(f.name, f.value); err != nil {
			return model.FoodEntry{}, err
		}
	}

	entry := model.NewFoodEntry(model.Analysis{
		FoodName:        in.Name,
		Calories:        in.Calories,
		Macros:          model.Macros{Protein: in.Protein, Carbs: in.Carbs, Fat: in.Fat},
		Ingredients:     []string{},
		HealthTip:       model.ManualHealthTip,
		ConfidenceScore: model.ManualConfidence,
	}, "", now)
	if err := st.Append(entry); err != nil {
		return model.FoodEntry{}, err
	}
	return entry, nil
}

func validateNonNegativeInt(name string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}
