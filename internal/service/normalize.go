package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Helpers in this file are pure and deterministic; the orchestrator's
// degraded-mode behavior depends on that.

var nonNumericPattern = regexp.MustCompile(`[^0-9.]`)

// toNumber coerces a loosely typed JSON value into a float64. Numbers pass
// through; strings have their embedded numeric run extracted ("24g protein"
// becomes 24). Anything else yields the fallback. Never panics.
func toNumber(value any, fallback float64) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		stripped := nonNumericPattern.ReplaceAllString(v, "")
		if stripped == "" {
			return fallback
		}
		if parsed, err := strconv.ParseFloat(stripped, 64); err == nil {
			return parsed
		}
		return fallback
	default:
		return fallback
	}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func head[T any](items []T, max int) []T {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Raw payload shapes as returned by the completion service. Fields that the
// model gets wrong most often are kept loosely typed and coerced below.

type rawBriefSection struct {
	Title   string   `json:"title"`
	Detail  string   `json:"detail"`
	Summary string   `json:"summary"`
	Actions []string `json:"actions"`
	Action  string   `json:"action"`
}

type rawBrief struct {
	Summary       string             `json:"summary"`
	Sections      []*rawBriefSection `json:"sections"`
	PriorityScore any                `json:"priorityScore"`
}

type rawIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Portion  string `json:"portion"`
	Calories any    `json:"calories"`
	Protein  any    `json:"protein"`
}

type rawMealSuggestion struct {
	Title          string           `json:"title"`
	Calories       any              `json:"calories"`
	Protein        any              `json:"protein"`
	Carbs          any              `json:"carbs"`
	Fats           any              `json:"fats"`
	MealType       string           `json:"mealType"`
	Serving        string           `json:"serving"`
	Ingredients    []*rawIngredient `json:"ingredients"`
	Notes          string           `json:"notes"`
	Confidence     any              `json:"confidence"`
	RelatedQueries []string         `json:"relatedQueries"`
}

type rawPlanBlock struct {
	Day          string `json:"day"`
	Focus        string `json:"focus"`
	Intensity    string `json:"intensity"`
	Duration     string `json:"duration"`
	Primary      string `json:"primary"`
	Accessory    string `json:"accessory"`
	Conditioning string `json:"conditioning"`
	Notes        string `json:"notes"`
}

type rawPlan struct {
	Plan    []*rawPlanBlock `json:"plan"`
	Summary string          `json:"summary"`
}

// normalizeSections drops null entries, caps the list at 4 sections and each
// section's actions at 4, and fills per-field defaults.
func normalizeSections(sections []*rawBriefSection) []BriefSection {
	out := []BriefSection{}
	for _, section := range sections {
		if section == nil {
			continue
		}
		if len(out) == 4 {
			break
		}
		title := section.Title
		if title == "" {
			title = fmt.Sprintf("Priority %d", len(out)+1)
		}
		detail := firstNonEmpty(section.Detail, section.Summary, "Stay consistent and monitor signals.")
		actions := section.Actions
		if len(actions) == 0 && section.Action != "" {
			actions = []string{section.Action}
		}
		actions = head(actions, 4)
		if actions == nil {
			actions = []string{}
		}
		out = append(out, BriefSection{Title: title, Detail: detail, Actions: actions})
	}
	return out
}

// normalizeIngredients caps the list at 5 and defaults each entry field by
// field; an absent or empty list yields the fallback unchanged.
func normalizeIngredients(items []*rawIngredient, fallback []Ingredient) []Ingredient {
	if len(items) == 0 {
		return fallback
	}
	items = head(items, 5)
	out := make([]Ingredient, 0, len(items))
	for idx, item := range items {
		if item == nil {
			item = &rawIngredient{}
		}
		name := item.Name
		if name == "" {
			name = fmt.Sprintf("Ingredient %d", idx+1)
		}
		out = append(out, Ingredient{
			Name:     name,
			Quantity: firstNonEmpty(item.Quantity, item.Portion, "N/A"),
			Calories: toNumber(item.Calories, 0),
			Protein:  toNumber(item.Protein, 0),
		})
	}
	return out
}

// normalizeRelatedQueries trims entries, drops empties and caps at 5.
// A missing list yields the fallback.
func normalizeRelatedQueries(items []string, fallback []string) []string {
	if items == nil {
		return fallback
	}
	out := []string{}
	for _, entry := range items {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		if len(out) == 5 {
			break
		}
		out = append(out, trimmed)
	}
	return out
}

// normalizePlanBlocks caps the plan at 7 blocks and fills every missing
// field with a usable default.
func normalizePlanBlocks(blocks []*rawPlanBlock) []PlanBlock {
	blocks = head(blocks, 7)
	out := make([]PlanBlock, 0, len(blocks))
	for idx, block := range blocks {
		if block == nil {
			block = &rawPlanBlock{}
		}
		day := block.Day
		if day == "" {
			day = fmt.Sprintf("Day %d", idx+1)
		}
		out = append(out, PlanBlock{
			Day:          day,
			Focus:        firstNonEmpty(block.Focus, "Hybrid strength"),
			Intensity:    firstNonEmpty(block.Intensity, "Moderate"),
			Duration:     firstNonEmpty(block.Duration, "60 min"),
			Primary:      firstNonEmpty(block.Primary, "Compound lift clusters"),
			Accessory:    firstNonEmpty(block.Accessory, "Accessory work + conditioning"),
			Conditioning: firstNonEmpty(block.Conditioning, "Zone 2 flush"),
			Notes:        firstNonEmpty(block.Notes, "Keep tempo honest and log RPE."),
		})
	}
	return out
}

func roundToInt(v float64) int {
	return int(math.Round(v))
}
