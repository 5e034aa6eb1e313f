package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Athlete is the single document that backs everything a user sees:
// profile, derived targets, meal log, plan and analytics history.
// One athlete document per user, keyed by UserID.
type Athlete struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"userId" json:"userId"` // owning user, unique
	Profile          Profile            `bson:"profile" json:"profile"`
	GoalPrescription GoalPrescription   `bson:"goalPrescription" json:"goalPrescription"`
	OverviewStats    []OverviewStat     `bson:"overviewStats,omitempty" json:"overviewStats,omitempty"`
	HeroBadges       []string           `bson:"heroBadges,omitempty" json:"heroBadges,omitempty"`
	StatHighlights   []OverviewStat     `bson:"statHighlights,omitempty" json:"statHighlights,omitempty"`
	FocusCards       []FocusCard        `bson:"focusCards,omitempty" json:"focusCards,omitempty"`
	Timeline         []TimelineEntry    `bson:"timeline,omitempty" json:"timeline,omitempty"`
	MacroSplits      []MacroSplit       `bson:"macroSplits,omitempty" json:"macroSplits,omitempty"`
	MealLog          []MealLogEntry     `bson:"mealLog,omitempty" json:"mealLog,omitempty"`
	PlanTracks       []PlanTrack        `bson:"planTracks,omitempty" json:"planTracks,omitempty"`
	DailyWorkouts    []DailyWorkout     `bson:"dailyWorkouts,omitempty" json:"dailyWorkouts,omitempty"`
	QuickActions     []string           `bson:"quickActions,omitempty" json:"quickActions,omitempty"`
	Streak           Streak             `bson:"streak" json:"streak"`
	AnalyticsDays    []AnalyticsDay     `bson:"analyticsDays,omitempty" json:"analyticsDays,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Profile holds identity and behavioral attributes supplied at onboarding.
type Profile struct {
	Name         string   `bson:"name" json:"name"`
	Email        string   `bson:"email" json:"email"`
	Focus        string   `bson:"focus,omitempty" json:"focus,omitempty"`
	Age          int      `bson:"age,omitempty" json:"age,omitempty"`
	Weight       string   `bson:"weight,omitempty" json:"weight,omitempty"` // e.g. "78 kg"
	Height       string   `bson:"height,omitempty" json:"height,omitempty"` // e.g. "178 cm"
	FitnessLevel string   `bson:"fitnessLevel,omitempty" json:"fitnessLevel,omitempty"`
	BadHabits    []string `bson:"badHabits,omitempty" json:"badHabits,omitempty"`
	Goal         string   `bson:"goal,omitempty" json:"goal,omitempty"`
}

// GoalPrescription carries the derived daily targets. It is always
// recomputed from the profile; never edited directly.
type GoalPrescription struct {
	Calories      string `bson:"calories,omitempty" json:"calories,omitempty"`           // "2496 kcal / day"
	ProteinTarget string `bson:"proteinTarget,omitempty" json:"proteinTarget,omitempty"` // "156 g protein"
	DietPlan      string `bson:"dietPlan,omitempty" json:"dietPlan,omitempty"`
	WorkoutPlan   string `bson:"workoutPlan,omitempty" json:"workoutPlan,omitempty"`
	Notes         string `bson:"notes,omitempty" json:"notes,omitempty"`
}

type OverviewStat struct {
	Label string `bson:"label,omitempty" json:"label,omitempty"`
	Value string `bson:"value,omitempty" json:"value,omitempty"`
	Delta string `bson:"delta,omitempty" json:"delta,omitempty"`
	Unit  string `bson:"unit,omitempty" json:"unit,omitempty"`
}

type FocusCard struct {
	Label       string    `bson:"label,omitempty" json:"label,omitempty"`
	Value       string    `bson:"value,omitempty" json:"value,omitempty"`
	Trend       string    `bson:"trend,omitempty" json:"trend,omitempty"`
	TrendPoints []float64 `bson:"trendPoints,omitempty" json:"trendPoints,omitempty"`
}

type TimelineEntry struct {
	Time   string `bson:"time,omitempty" json:"time,omitempty"`
	Title  string `bson:"title,omitempty" json:"title,omitempty"`
	Detail string `bson:"detail,omitempty" json:"detail,omitempty"`
}

type MacroSplit struct {
	Label   string  `bson:"label,omitempty" json:"label,omitempty"`
	Value   string  `bson:"value,omitempty" json:"value,omitempty"`
	Percent float64 `bson:"percent,omitempty" json:"percent,omitempty"`
}

// MealLogEntry is one logged meal as shown on the dashboard.
// Calories and protein are kept as display strings ("410 kcal", "24g").
type MealLogEntry struct {
	Title    string `bson:"title,omitempty" json:"title,omitempty"`
	Protein  string `bson:"protein,omitempty" json:"protein,omitempty"`
	Calories string `bson:"calories,omitempty" json:"calories,omitempty"`
	Status   string `bson:"status,omitempty" json:"status,omitempty"` // manual, camera, verified, ai
	MealType string `bson:"mealType,omitempty" json:"mealType,omitempty"`
}

// PlanTrack is one row of the plan summary shown on the dashboard.
// The whole collection is replaced by every plan generation.
type PlanTrack struct {
	Name   string `bson:"name,omitempty" json:"name,omitempty"`
	Detail string `bson:"detail,omitempty" json:"detail,omitempty"`
	Focus  string `bson:"focus,omitempty" json:"focus,omitempty"`
}

type StreakCell struct {
	Completed      bool `bson:"completed" json:"completed"`
	Today          bool `bson:"today" json:"today"`
	ProteinPerfect bool `bson:"proteinPerfect" json:"proteinPerfect"`
}

type Streak struct {
	Length int          `bson:"length" json:"length"`
	Grid   []StreakCell `bson:"grid,omitempty" json:"grid,omitempty"`
}

type AnalyticsMeal struct {
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	Time     string `bson:"time,omitempty" json:"time,omitempty"`
	Calories string `bson:"calories,omitempty" json:"calories,omitempty"`
	Protein  string `bson:"protein,omitempty" json:"protein,omitempty"`
	Source   string `bson:"source,omitempty" json:"source,omitempty"`
	MealType string `bson:"mealType,omitempty" json:"mealType,omitempty"`
}

type AnalyticsSlice struct {
	Label   string  `bson:"label,omitempty" json:"label,omitempty"`
	Percent float64 `bson:"percent,omitempty" json:"percent,omitempty"`
	Accent  string  `bson:"accent,omitempty" json:"accent,omitempty"`
}

// AnalyticsDay is one day of scored history, addressable by id or date.
type AnalyticsDay struct {
	ID           string           `bson:"id,omitempty" json:"id,omitempty"`
	Label        string           `bson:"label,omitempty" json:"label,omitempty"`
	Date         string           `bson:"date,omitempty" json:"date,omitempty"` // YYYY-MM-DD
	FitnessScore float64          `bson:"fitnessScore,omitempty" json:"fitnessScore,omitempty"`
	DietScore    float64          `bson:"dietScore,omitempty" json:"dietScore,omitempty"`
	Readiness    string           `bson:"readiness,omitempty" json:"readiness,omitempty"`
	StreakRisk   string           `bson:"streakRisk,omitempty" json:"streakRisk,omitempty"`
	NutritionGap string           `bson:"nutritionGap,omitempty" json:"nutritionGap,omitempty"`
	SliderIndex  int              `bson:"sliderIndex,omitempty" json:"sliderIndex,omitempty"`
	FitnessGoals []AnalyticsSlice `bson:"fitnessGoals,omitempty" json:"fitnessGoals,omitempty"`
	DietSlices   []AnalyticsSlice `bson:"dietSlices,omitempty" json:"dietSlices,omitempty"`
	Meals        []AnalyticsMeal  `bson:"meals,omitempty" json:"meals,omitempty"`
}
