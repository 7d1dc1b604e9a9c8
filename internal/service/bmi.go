package service

import (
	"errors"
	"math"
)

var ErrInvalidBody = errors.New("height and weight must be positive")

// BMIResult is a body-mass index with its category and the matching
// improvement plan.
type BMIResult struct {
	Value     float64 `json:"bmi"`
	Category  string  `json:"category"`
	Summary   string  `json:"summary"`
	Focus     string  `json:"focus"`
	Exercises string  `json:"exercises"`
	Frequency string  `json:"frequency"`
	Protein   string  `json:"protein"`
}

type bmiBand struct {
	below float64
	plan  BMIResult
}

var bmiBands = []bmiBand{
	{18.5, BMIResult{
		Category:  "Underweight",
		Summary:   "Focus on surplus calories & strength.",
		Focus:     "Build Muscle Mass",
		Exercises: "Squats, Deadlifts, Bench Press",
		Frequency: "3-4x / week",
		Protein:   "1.5g - 2g per kg bodyweight",
	}},
	{25, BMIResult{
		Category:  "Healthy Weight",
		Summary:   "Maintain with balanced diet.",
		Focus:     "General Fitness",
		Exercises: "Running, Swimming, Yoga",
		Frequency: "3x / week",
		Protein:   "1.2g per kg bodyweight",
	}},
	{30, BMIResult{
		Category:  "Overweight",
		Summary:   "Calorie deficit & cardio.",
		Focus:     "Fat Loss",
		Exercises: "HIIT, Brisk Walking, Cycling",
		Frequency: "4-5x / week",
		Protein:   "1.8g per kg bodyweight",
	}},
	{math.Inf(1), BMIResult{
		Category:  "Obese",
		Summary:   "High protein, strict deficit.",
		Focus:     "Metabolic Health",
		Exercises: "Low Impact Cardio, Strength",
		Frequency: "Daily light activity",
		Protein:   "2.0g per kg bodyweight",
	}},
}

// BMI computes weight / height² rounded to one decimal. The category is
// taken from the rounded value, so 24.96 reads as 25.0 and is Overweight.
func BMI(heightCm, weightKg float64) (BMIResult, error) {
	if !(heightCm > 0) || !(weightKg > 0) || math.IsInf(heightCm, 0) || math.IsInf(weightKg, 0) {
		return BMIResult{}, ErrInvalidBody
	}
	m := heightCm / 100
	value := math.Round(weightKg/(m*m)*10) / 10
	for _, band := range bmiBands {
		if value < band.below {
			out := band.plan
			out.Value = value
			return out, nil
		}
	}
	// Unreachable: the last band is unbounded.
	return BMIResult{}, ErrInvalidBody
}
