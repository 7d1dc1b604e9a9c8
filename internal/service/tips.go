package service

import "time"

var dailyTips = []string{
	"Hydrate! Drinking water before meals aids digestion.",
	"Eat the rainbow: colorful plates mean diverse vitamins.",
	"Protein at breakfast keeps you full longer.",
	"Chew slowly to help your brain register fullness.",
	"Add fiber-rich veggies to every meal for gut health.",
}

// DailyTip rotates through a fixed tip list by day of year.
func DailyTip(t time.Time) string {
	return dailyTips[t.In(time.Local).YearDay()%len(dailyTips)]
}
