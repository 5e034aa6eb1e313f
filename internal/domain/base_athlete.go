package domain

// NewBaseAthlete returns the starter athlete document used when a user
// onboards for the first time. Onboarding personalization overwrites the
// profile, prescription and badge fields before the document is saved,
// so the template only has to be structurally complete and deterministic.
func NewBaseAthlete() *Athlete {
	return &Athlete{
		Profile: Profile{
			Name:         "Jordan Vega",
			Email:        "jordan.vega@example.com",
			Focus:        "Hybrid strength + engine",
			Age:          29,
			Weight:       "78 kg",
			Height:       "178 cm",
			FitnessLevel: "Advanced hybrid",
			BadHabits:    []string{"Late-night snacking"},
			Goal:         "Hybrid performance",
		},
		GoalPrescription: GoalPrescription{
			Calories:      "2496 kcal / day",
			ProteinTarget: "156 g protein",
			DietPlan:      "High-protein flex plan",
			WorkoutPlan:   "4-day AI rotation",
			Notes:         "Baseline prescription. Complete onboarding to personalize.",
		},
		OverviewStats: []OverviewStat{
			{Label: "Protein today", Value: "140g", Delta: "+12g", Unit: "of 156g"},
			{Label: "Training split", Value: "4 day split", Delta: "Adaptive", Unit: "AI scheduled"},
			{Label: "Streak", Value: "9 days", Delta: "+2", Unit: "personal best 14"},
			{Label: "Readiness", Value: "82", Delta: "steady", Unit: "score"},
		},
		HeroBadges: []string{"Hybrid performance mode", "4-day cadence", "High-protein flex fueled"},
		StatHighlights: []OverviewStat{
			{Label: "Weekly volume", Value: "14,200 kg", Delta: "+4%"},
			{Label: "Zone 2 minutes", Value: "96 min", Delta: "+12"},
			{Label: "Protein adherence", Value: "91%", Delta: "+3%"},
		},
		FocusCards: []FocusCard{
			{Label: "Strength", Value: "On track", Trend: "up", TrendPoints: []float64{62, 64, 67, 70, 72}},
			{Label: "Conditioning", Value: "Build", Trend: "up", TrendPoints: []float64{40, 44, 47, 52, 55}},
			{Label: "Recovery", Value: "Watch", Trend: "flat", TrendPoints: []float64{71, 70, 72, 69, 70}},
		},
		Timeline: []TimelineEntry{
			{Time: "06:30", Title: "Wake + hydrate", Detail: "500ml water, electrolytes"},
			{Time: "07:15", Title: "Primary session", Detail: "Lower body strength block"},
			{Time: "13:00", Title: "Fuel checkpoint", Detail: "Protein-forward lunch"},
			{Time: "21:30", Title: "Wind down", Detail: "Screens off, sleep ritual"},
		},
		MacroSplits: []MacroSplit{
			{Label: "Protein", Value: "140g", Percent: 30},
			{Label: "Carbs", Value: "290g", Percent: 50},
			{Label: "Fats", Value: "62g", Percent: 20},
		},
		MealLog: []MealLogEntry{
			{Title: "Paneer bhurji + roti", Protein: "24g", Calories: "410 kcal", Status: "verified", MealType: "Breakfast"},
			{Title: "Rajma chawal bowl", Protein: "18g", Calories: "480 kcal", Status: "manual", MealType: "Lunch"},
		},
		PlanTracks: []PlanTrack{
			{Name: "Strength block", Focus: "Hybrid performance", Detail: "Dialed for 4 sessions · High-protein flex plan"},
			{Name: "Engine block", Focus: "Aerobic base", Detail: "Zone 2 + tempo touches"},
		},
		QuickActions: []string{"Log a meal", "Ask the coach", "Generate plan"},
		Streak: Streak{
			Length: 9,
			Grid: []StreakCell{
				{Completed: true}, {Completed: true}, {Completed: true, ProteinPerfect: true},
				{Completed: true}, {Completed: true, ProteinPerfect: true}, {Completed: true},
				{Completed: false, Today: true},
			},
		},
		AnalyticsDays: []AnalyticsDay{
			{
				ID: "today", Label: "Today", Date: "", FitnessScore: 78, DietScore: 82,
				Readiness: "steady", StreakRisk: "low", NutritionGap: "16g protein behind pace",
				SliderIndex: 0,
				FitnessGoals: []AnalyticsSlice{
					{Label: "Strength", Percent: 70, Accent: "amber"},
					{Label: "Conditioning", Percent: 55, Accent: "teal"},
				},
				DietSlices: []AnalyticsSlice{
					{Label: "Protein", Percent: 84, Accent: "amber"},
					{Label: "Carbs", Percent: 62, Accent: "teal"},
					{Label: "Fats", Percent: 48, Accent: "rose"},
				},
				Meals: []AnalyticsMeal{
					{Name: "Paneer bhurji + roti", Time: "08:10 AM", Calories: "410 kcal", Protein: "24g protein", Source: "verified", MealType: "Breakfast"},
				},
			},
			{
				ID: "yesterday", Label: "Yesterday", FitnessScore: 74, DietScore: 79,
				Readiness: "primed", StreakRisk: "low", NutritionGap: "on target",
				SliderIndex: 1,
			},
			{
				ID: "day-3", Label: "2 days ago", FitnessScore: 69, DietScore: 71,
				Readiness: "fatigued", StreakRisk: "medium", NutritionGap: "22g protein short",
				SliderIndex: 2,
			},
		},
	}
}
