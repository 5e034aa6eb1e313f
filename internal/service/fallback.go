package service

import (
	"fmt"
	"strings"
)

// referenceMeal is one entry of the curated macro table used when the
// completion service cannot produce a meal suggestion.
type referenceMeal struct {
	Title    string
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	MealType string
}

var referenceMeals = []referenceMeal{
	{Title: "Paneer bhurji + roti", Calories: 410, Protein: 24, Carbs: 32, Fats: 18, MealType: "Breakfast"},
	{Title: "Masala dosa + sambar", Calories: 350, Protein: 12, Carbs: 54, Fats: 10, MealType: "Breakfast"},
	{Title: "Rajma chawal bowl", Calories: 480, Protein: 18, Carbs: 78, Fats: 8, MealType: "Lunch"},
	{Title: "Grilled tandoori chicken salad", Calories: 320, Protein: 36, Carbs: 14, Fats: 12, MealType: "Dinner"},
	{Title: "Poha + peanuts", Calories: 290, Protein: 9, Carbs: 44, Fats: 8, MealType: "Snack"},
	{Title: "Chana chaat", Calories: 260, Protein: 11, Carbs: 36, Fats: 6, MealType: "Snack"},
}

// fallbackBrief synthesizes a coaching brief from the snapshot alone.
// Deterministic: the same snapshot always yields the same brief.
func fallbackBrief(snapshot AthleteSnapshot) *CoachingBrief {
	primaryGoal := snapshot.Profile.Goal
	if primaryGoal == "" {
		primaryGoal = "Hybrid performance"
	}
	readiness := "steady"
	if len(snapshot.AnalyticsHighlights) > 0 && snapshot.AnalyticsHighlights[0].Readiness != "" {
		readiness = snapshot.AnalyticsHighlights[0].Readiness
	}

	return &CoachingBrief{
		Summary: fmt.Sprintf(
			"Hold the %s lane today. Readiness looks %s, so keep intensity smooth while watching protein pacing.",
			strings.ToLower(primaryGoal), readiness,
		),
		Sections: []BriefSection{
			{
				Title:   "Training focus",
				Detail:  "Anchor on quality reps over volume. Layer accessory work only if energy feels high.",
				Actions: []string{"Lock warm-up, then push main lift to RPE 8.", "Stop if tempo breaks down."},
			},
			{
				Title:   "Fueling window",
				Detail:  "Distribute protein evenly and cover carbs 60 minutes pre-session.",
				Actions: []string{"30g protein breakfast", "Hydrate + electrolytes before lifting"},
			},
			{
				Title:   "Recovery ritual",
				Detail:  "Downshift after training to preserve streak confidence.",
				Actions: []string{"10-minute breath or walk", "Log sleep cues tonight"},
			},
		},
		PriorityScore: 60,
	}
}

// fallbackMealSuggestion picks the closest curated meal by case-insensitive
// substring match on the title, defaulting to the first entry.
func fallbackMealSuggestion(query, mealType string) *MealSuggestion {
	normalizedQuery := strings.ToLower(query)
	base := referenceMeals[0]
	for _, meal := range referenceMeals {
		if strings.Contains(strings.ToLower(meal.Title), normalizedQuery) {
			base = meal
			break
		}
	}

	if mealType == "" {
		mealType = base.MealType
	}

	return &MealSuggestion{
		Title:    base.Title,
		Calories: base.Calories,
		Protein:  base.Protein,
		Carbs:    base.Carbs,
		Fats:     base.Fats,
		MealType: mealType,
		Serving:  "1 standard plate",
		Ingredients: []Ingredient{
			{Name: "Protein base", Quantity: "120 g", Calories: 180, Protein: 22},
			{Name: "Carb support", Quantity: "100 g", Calories: 150, Protein: 4},
			{Name: "Healthy fats", Quantity: "15 g", Calories: 135, Protein: 0},
		},
		Notes:          "Based on curated macro tables while AI service is offline.",
		Confidence:     0.55,
		RelatedQueries: relatedReferenceTitles(base.Title),
	}
}

// relatedReferenceTitles returns up to 4 other curated titles.
func relatedReferenceTitles(exclude string) []string {
	out := []string{}
	for _, meal := range referenceMeals {
		if meal.Title == exclude {
			continue
		}
		if len(out) == 4 {
			break
		}
		out = append(out, meal.Title)
	}
	return out
}
