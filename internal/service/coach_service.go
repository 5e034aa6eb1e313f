package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Sudhikumaran/Protena-ai/internal/ai"
	"github.com/Sudhikumaran/Protena-ai/internal/domain"
	"github.com/Sudhikumaran/Protena-ai/internal/metrics"
	"github.com/Sudhikumaran/Protena-ai/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrAthleteNotFound = errors.New("athlete not found")
	// ErrPlanUpstream signals that plan generation failed at the completion
	// service or returned unusable content. Unlike briefs and meal
	// suggestions, a plan is a committed artifact and is never silently
	// synthesized from a template.
	ErrPlanUpstream = errors.New("unable to generate plan right now")
)

// Source tags on AI-derived payloads.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// CompletionClient is the narrow slice of the completion service the
// orchestrator needs. *ai.Client satisfies it.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)
}

// --- Response DTOs ---

type BriefSection struct {
	Title   string   `json:"title"`
	Detail  string   `json:"detail"`
	Actions []string `json:"actions"`
}

type ProviderMeta struct {
	ProviderError string `json:"providerError,omitempty"`
}

type CoachingBrief struct {
	Summary       string         `json:"summary"`
	Sections      []BriefSection `json:"sections"`
	PriorityScore int            `json:"priorityScore"`
	GeneratedAt   time.Time      `json:"generatedAt"`
	Source        string         `json:"source"`
	Meta          *ProviderMeta  `json:"meta,omitempty"`
}

type Ingredient struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

type MealSuggestion struct {
	Title          string        `json:"title"`
	Calories       float64       `json:"calories"`
	Protein        float64       `json:"protein"`
	Carbs          float64       `json:"carbs"`
	Fats           float64       `json:"fats"`
	MealType       string        `json:"mealType"`
	Serving        string        `json:"serving"`
	Ingredients    []Ingredient  `json:"ingredients"`
	Notes          string        `json:"notes"`
	Confidence     float64       `json:"confidence"`
	RelatedQueries []string      `json:"relatedQueries"`
	GeneratedAt    time.Time     `json:"generatedAt"`
	Source         string        `json:"source"`
	Meta           *ProviderMeta `json:"meta,omitempty"`
}

// PlanBlock is one day of a generated weekly schedule before it is
// expanded into a DailyWorkout record.
type PlanBlock struct {
	Day          string `json:"day"`
	Focus        string `json:"focus"`
	Intensity    string `json:"intensity"`
	Duration     string `json:"duration"`
	Primary      string `json:"primary"`
	Accessory    string `json:"accessory"`
	Conditioning string `json:"conditioning"`
	Notes        string `json:"notes"`
}

type GeneratedPlan struct {
	Plan          []PlanBlock           `json:"plan"`
	DailyWorkouts []domain.DailyWorkout `json:"dailyWorkouts"`
	Summary       string                `json:"summary"`
	GeneratedAt   time.Time             `json:"generatedAt"`
}

// AnalyticsHighlight is the reduced per-day view embedded in prompts.
type AnalyticsHighlight struct {
	ID           string `json:"id,omitempty"`
	Date         string `json:"date,omitempty"`
	Readiness    string `json:"readiness,omitempty"`
	StreakRisk   string `json:"streakRisk,omitempty"`
	NutritionGap string `json:"nutritionGap,omitempty"`
}

// AthleteSnapshot is a transient read-only projection of the athlete
// document, assembled fresh per request for prompt construction. It is
// never persisted.
type AthleteSnapshot struct {
	Profile             domain.Profile          `json:"profile"`
	GoalPrescription    domain.GoalPrescription `json:"goalPrescription"`
	OverviewStats       []domain.OverviewStat   `json:"overviewStats,omitempty"`
	PlanTracks          []domain.PlanTrack      `json:"planTracks,omitempty"`
	MacroSplits         []domain.MacroSplit     `json:"macroSplits,omitempty"`
	HeroBadges          []string                `json:"heroBadges,omitempty"`
	Timeline            []domain.TimelineEntry  `json:"timeline"`
	AnalyticsHighlights []AnalyticsHighlight    `json:"analyticsHighlights,omitempty"`
	RecentMeals         []domain.MealLogEntry   `json:"recentMeals"`
}

// --- Prompts ---

const briefSystemPrompt = "You are an elite hybrid performance coach who writes concise, high-impact daily briefs. Always return valid JSON with summary, sections, and priorityScore between 0 and 100. Tone is calm, confident, and specific."

const mealSystemPrompt = "You are a precision sports nutrition assistant for hybrid athletes. Respond ONLY with JSON describing one meal suggestion, macros, ingredients, and 3-5 related search ideas."

const planSystemPrompt = "You are an elite hybrid coach that designs weekly workout schedules. Always respond with JSON containing a plan array of up to 7 objects."

// --- Service Interface ---

type CoachService interface {
	CoachingBrief(ctx context.Context, userID string) (*CoachingBrief, error)
	MealSuggestion(ctx context.Context, userID, query, mealType string) (*MealSuggestion, error)
	GeneratePlan(ctx context.Context, userID, prompt string, trainingDays int) (*GeneratedPlan, error)
}

// --- Service Implementation ---

type coachService struct {
	athleteRepo repository.AthleteRepository
	completion  CompletionClient
	temperature float64
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
}

// NewCoachService creates a new instance of coachService. temperature is
// the sampling default for brief and meal prompts; plan generation always
// runs cooler at 0.4.
func NewCoachService(athleteRepo repository.AthleteRepository, completion CompletionClient, temperature float64, logger *slog.Logger) CoachService {
	if temperature <= 0 {
		temperature = 0.35
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &coachService{
		athleteRepo: athleteRepo,
		completion:  completion,
		temperature: temperature,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// buildSnapshot reduces the athlete document to the projection embedded in
// prompts: at most 4 timeline entries, 3 analytics highlights, 3 recent meals.
func buildSnapshot(athlete *domain.Athlete) AthleteSnapshot {
	if athlete == nil {
		return AthleteSnapshot{}
	}
	snapshot := AthleteSnapshot{
		Profile:          athlete.Profile,
		GoalPrescription: athlete.GoalPrescription,
		OverviewStats:    athlete.OverviewStats,
		PlanTracks:       athlete.PlanTracks,
		MacroSplits:      athlete.MacroSplits,
		HeroBadges:       athlete.HeroBadges,
		Timeline:         head(athlete.Timeline, 4),
		RecentMeals:      head(athlete.MealLog, 3),
	}
	if snapshot.Timeline == nil {
		snapshot.Timeline = []domain.TimelineEntry{}
	}
	if snapshot.RecentMeals == nil {
		snapshot.RecentMeals = []domain.MealLogEntry{}
	}
	for _, day := range head(athlete.AnalyticsDays, 3) {
		snapshot.AnalyticsHighlights = append(snapshot.AnalyticsHighlights, AnalyticsHighlight{
			ID:           day.ID,
			Date:         day.Date,
			Readiness:    day.Readiness,
			StreakRisk:   day.StreakRisk,
			NutritionGap: day.NutritionGap,
		})
	}
	return snapshot
}

func (s *coachService) loadSnapshot(ctx context.Context, userID string) (AthleteSnapshot, error) {
	athlete, err := s.athleteRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AthleteSnapshot{}, ErrAthleteNotFound
		}
		return AthleteSnapshot{}, err
	}
	return buildSnapshot(athlete), nil
}

// complete wraps the completion call with latency and outcome metrics.
func (s *coachService) complete(ctx context.Context, operation, systemPrompt, userPrompt string, temperature float64) (string, error) {
	start := s.now()
	content, err := s.completion.Complete(ctx, systemPrompt, userPrompt, temperature)
	metrics.CompletionDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	return content, err
}

// CoachingBrief produces the daily brief. Any completion failure short of
// a missing credential degrades to a locally synthesized brief at 200.
func (s *coachService) CoachingBrief(ctx context.Context, userID string) (*CoachingBrief, error) {
	snapshot, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshotJSON, _ := json.Marshal(snapshot)
	userPrompt := fmt.Sprintf(
		`Create a daily coaching brief. Use this athlete snapshot to reference current load and gaps. Respond ONLY with JSON matching the schema {"summary": string, "sections": [{"title": string, "detail": string, "actions": [string]}], "priorityScore": number}. Snapshot: %s`,
		snapshotJSON,
	)

	content, err := s.complete(ctx, metrics.OpCoachingBrief, briefSystemPrompt, userPrompt, s.temperature)
	if err != nil {
		if errors.Is(err, ai.ErrUnconfigured) {
			metrics.CompletionRequestsTotal.WithLabelValues(metrics.OpCoachingBrief, metrics.OutcomeUnconfigured).Inc()
			return nil, err
		}
		s.logger.Warn("coaching brief degraded to fallback", "user", userID, "error", err)
		return s.briefFallback(snapshot, err), nil
	}

	var payload rawBrief
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		s.logger.Warn("coaching brief content unparsable", "user", userID, "error", err)
		return s.briefFallback(snapshot, err), nil
	}

	metrics.CompletionRequestsTotal.WithLabelValues(metrics.OpCoachingBrief, metrics.OutcomeAI).Inc()

	summary := payload.Summary
	if summary == "" {
		summary = "Hold course and stay attentive to protein pacing today."
	}
	score := roundToInt(toNumber(payload.PriorityScore, 55))
	if score == 0 {
		score = 55
	}
	return &CoachingBrief{
		Summary:       summary,
		Sections:      normalizeSections(payload.Sections),
		PriorityScore: clampInt(score, 0, 100),
		GeneratedAt:   s.now().UTC(),
		Source:        SourceAI,
	}, nil
}

func (s *coachService) briefFallback(snapshot AthleteSnapshot, cause error) *CoachingBrief {
	metrics.CompletionRequestsTotal.WithLabelValues(metrics.OpCoachingBrief, metrics.OutcomeFallback).Inc()
	brief := fallbackBrief(snapshot)
	brief.GeneratedAt = s.now().UTC()
	brief.Source = SourceFallback
	brief.Meta = &ProviderMeta{ProviderError: cause.Error()}
	return brief
}

// MealSuggestion estimates macros for a described meal. Degrades to a
// curated reference lookup on any completion failure except a missing
// credential.
func (s *coachService) MealSuggestion(ctx context.Context, userID, query, mealType string) (*MealSuggestion, error) {
	snapshot, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	caloriesTarget := toNumber(snapshot.GoalPrescription.Calories, 2300)
	proteinTarget := toNumber(snapshot.GoalPrescription.ProteinTarget, 140)
	macroParts := make([]string, 0, len(snapshot.MacroSplits))
	for _, macro := range snapshot.MacroSplits {
		macroParts = append(macroParts, fmt.Sprintf("%s: %s", macro.Label, macro.Value))
	}
	recentMealsJSON, _ := json.Marshal(snapshot.RecentMeals)

	displayMealType := mealType
	if displayMealType == "" {
		displayMealType = "unspecified"
	}
	userPrompt := fmt.Sprintf(`Suggest a meal named "%s" (or closest variant) for meal type %s.
Athlete daily targets: %.0f kcal, %.0f g protein. Current macro distribution: %s.
Recent meals: %s.
Return JSON with schema {"title": string, "calories": number, "protein": number, "carbs": number, "fats": number, "mealType": string, "serving": string, "ingredients": [{"name": string, "quantity": string, "calories": number, "protein": number}], "notes": string, "confidence": number between 0 and 1, "relatedQueries": [string, string, ...]}. Use realistic grams for Indian meals when possible.`,
		query, displayMealType, caloriesTarget, proteinTarget, strings.Join(macroParts, ", "), recentMealsJSON,
	)

	content, err := s.complete(ctx, metrics.OpMealSuggestion, mealSystemPrompt, userPrompt, s.temperature)
	if err != nil {
		if errors.Is(err, ai.ErrUnconfigured) {
			metrics.CompletionRequestsTotal.WithLabelValues(metrics.OpMealSuggestion, metrics.OutcomeUnconfigured).Inc()
			return nil, err
		}
		s.logger.Warn("meal suggestion degraded to fallback", "user", userID, "error", err)
		return s.mealFallback(query, mealType, err), nil
	}

	var payload rawMealSuggestion
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		s.logger.Warn("meal suggestion content unparsable", "user", userID, "error", err)
		return s.mealFallback(query, mealType, err), nil
	}

	metrics.CompletionRequestsTotal.WithLabelValues(metrics.OpMealSuggestion, metrics.OutcomeAI).Inc()

	fallback := fallbackMealSuggestion(query, mealType)
	confidence := fallback.Confidence
	if payload.Confidence != nil {
		confidence = toNumber(payload.Confidence, fallback.Confidence)
	}
	return &MealSuggestion{
		Title:          firstNonEmpty(payload.Title, query),
		Calories:       toNumber(payload.Calories, fallback.Calories),
		Protein:        toNumber(payload.Protein, fallback.Protein),
		Carbs:          toNumber(payload.Carbs, fallback.Carbs),
		Fats:           toNumber(payload.Fats, fallback.Fats),
		MealType:       firstNonEmpty(payload.MealType, mealType, fallback.MealType),
		Serving:        firstNonEmpty(payload.Serving, fallback.Serving),
		Ingredients:    normalizeIngredients(payload.Ingredients, fallback.Ingredients),
		Notes:          firstNonEmpty(payload.Notes, fallback.Notes),
		Confidence:     clampFloat(confidence, 0, 1),
		RelatedQueries: normalizeRelatedQueries(payload.RelatedQueries, fallback.RelatedQueries),
		GeneratedAt:    s.now().UTC(),
		Source:         SourceAI,
	}, nil
}

func (s *coachService) mealFallback(query, mealType string, cause error) *MealSuggestion {
	metrics.CompletionRequestsTotal.WithLabelValues(metrics.OpMealSuggestion, metrics.OutcomeFallback).Inc()
	suggestion := fallbackMealSuggestion(query, mealType)
	suggestion.GeneratedAt = s.now().UTC()
	suggestion.Source = SourceFallback
	suggestion.Meta = &ProviderMeta{ProviderError: cause.Error()}
	return suggestion
}

// GeneratePlan builds a new weekly schedule and atomically replaces the
// athlete's plan tracks and daily workouts. There is deliberately no
// fallback path here: if the completion service did not actually run, the
// caller must know.
func (s *coachService) GeneratePlan(ctx context.Context, userID, prompt string, trainingDays int) (*GeneratedPlan, error) {
	snapshot, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	requestedDays := trainingDays
	if requestedDays == 0 {
		requestedDays = len(snapshot.Timeline)
	}
	if requestedDays == 0 {
		requestedDays = 4
	}
	requestedDays = clampInt(requestedDays, 3, 7)

	constraints := prompt
	if constraints == "" {
		constraints = "Use current readiness and macro targets"
	}
	promptData, _ := json.Marshal(map[string]any{
		"goalPrescription": snapshot.GoalPrescription,
		"planTracks":       snapshot.PlanTracks,
		"macroSplits":      snapshot.MacroSplits,
	})
	userPrompt := fmt.Sprintf(`Create a %d-day workout schedule for this athlete. Focus: %s.
Constraints from user: %s.
Use data: %s.
Return JSON {"plan": [{"day": string, "focus": string, "intensity": string, "duration": string, "primary": string, "accessory": string, "conditioning": string, "notes": string}], "summary": string}.`,
		requestedDays, snapshot.Profile.Goal, constraints, promptData,
	)

	content, err := s.complete(ctx, metrics.OpPlanGeneration, planSystemPrompt, userPrompt, 0.4)
	if err != nil {
		if errors.Is(err, ai.ErrUnconfigured) {
			metrics.CompletionRequestsTotal.WithLabelValues(metrics.OpPlanGeneration, metrics.OutcomeUnconfigured).Inc()
			return nil, err
		}
		metrics.CompletionRequestsTotal.WithLabelValues(metrics.OpPlanGeneration, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: %v", ErrPlanUpstream, err)
	}

	var payload rawPlan
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(metrics.OpPlanGeneration, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: invalid format: %v", ErrPlanUpstream, err)
	}

	metrics.CompletionRequestsTotal.WithLabelValues(metrics.OpPlanGeneration, metrics.OutcomeAI).Inc()

	blocks := normalizePlanBlocks(payload.Plan)
	workouts := s.buildDailyWorkouts(blocks)
	tracks := make([]domain.PlanTrack, 0, len(blocks))
	for _, block := range blocks {
		tracks = append(tracks, domain.PlanTrack{
			Name:   fmt.Sprintf("%s · %s", block.Day, block.Focus),
			Focus:  fmt.Sprintf("%s · %s", block.Intensity, block.Duration),
			Detail: fmt.Sprintf("%s | %s | %s", block.Primary, block.Accessory, block.Conditioning),
		})
	}

	if err := s.athleteRepo.ReplacePlan(ctx, userID, tracks, workouts); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}

	summary := payload.Summary
	if summary == "" {
		summary = "Plan synced from AI."
	}
	return &GeneratedPlan{
		Plan:          blocks,
		DailyWorkouts: workouts,
		Summary:       summary,
		GeneratedAt:   s.now().UTC(),
	}, nil
}

// buildDailyWorkouts expands normalized plan blocks into workout records:
// scheduledFor is the generation date plus the block index, one calendar
// day per block.
func (s *coachService) buildDailyWorkouts(blocks []PlanBlock) []domain.DailyWorkout {
	start := s.now()
	workouts := make([]domain.DailyWorkout, 0, len(blocks))
	for idx, block := range blocks {
		workouts = append(workouts, domain.DailyWorkout{
			ID:           s.newID(),
			Day:          block.Day,
			Focus:        block.Focus,
			Intensity:    block.Intensity,
			Duration:     block.Duration,
			ScheduledFor: start.AddDate(0, 0, idx).Format("2006-01-02"),
			Segments: []domain.WorkoutSegment{
				{Title: "Primary", Detail: block.Primary},
				{Title: "Accessory", Detail: block.Accessory},
				{Title: "Conditioning", Detail: block.Conditioning},
			},
			Notes:     block.Notes,
			Completed: false,
		})
	}
	return workouts
}
