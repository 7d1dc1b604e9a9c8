package gateway

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
)

const analyzePrompt = `Analyze the food shown in this image with strict nutritional accuracy.

1. Identify the main food item and all visible ingredients.
2. Estimate the portion size strictly from visual cues.
3. Calculate total calories, protein, carbs and fat for this specific portion.

CRITICAL CONSTRAINTS:
- Use standard USDA reference nutritional values for the identified food and portion.
- Do not guess or output ranges. Return exact single integer values.
- Output MUST be deterministic. Identical image inputs must yield identical outputs.
- If the food is a composite dish (for example pizza or a burger), break it down into its standard components and sum them.`

const recalculatePrompt = `Analyze the food shown again with strict adherence to standard reference data.

The dish was identified as %q.
Primary constraint: the ingredient list is CONFIRMED to be exactly: "%s".
Do not include any other ingredients in the calculation.

Task: calculate total calories, protein, carbs and fat for the visible portion, composed ONLY of the listed ingredients.

CRITICAL:
- Use standard USDA reference nutritional values.
- Output MUST be deterministic. Identical inputs must yield identical outputs.

Also provide a new brief health tip based on these specific ingredients.`

const advicePrompt = `You are an expert nutritionist. Analyze the user's nutrition for today based on these logs:
%s

User daily goals: %d calories, %dg protein.

Task:
1. Briefly analyze their intake so far (balanced? high sugar? enough protein?).
2. Suggest a specific, healthy next meal or snack to balance their numbers.
3. Keep the tone encouraging and concise (under 80 words).`

// CanonicalIngredients sorts a copy of the list ascending and joins it, so the
// same set in any order yields the same text.
func CanonicalIngredients(ingredients []string) string {
	sorted := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		ing = strings.TrimSpace(ing)
		if ing != "" {
			sorted = append(sorted, ing)
		}
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

func buildRecalculatePrompt(foodName string, ingredients []string) string {
	return fmt.Sprintf(recalculatePrompt, strings.TrimSpace(foodName), CanonicalIngredients(ingredients))
}

func buildAdvicePrompt(todays []model.FoodEntry, goals model.Goals) string {
	lines := make([]string, 0, len(todays))
	for _, e := range todays {
		lines = append(lines, fmt.Sprintf("- %s: %dkcal, %dg protein, %dg carbs, %dg fat",
			e.FoodName, e.Calories, e.Macros.Protein, e.Macros.Carbs, e.Macros.Fat))
	}
	return fmt.Sprintf(advicePrompt, strings.Join(lines, "\n"), goals.DailyCalorieGoal, goals.DailyProteinGoal)
}
