package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postValidated(t *testing.T, body string, req any) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		if !bindAndValidate(c, req) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	return recorder
}

type validationFailure struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details"`
}

func decodeFailure(t *testing.T, recorder *httptest.ResponseRecorder) validationFailure {
	t.Helper()
	var failure validationFailure
	if err := json.Unmarshal(recorder.Body.Bytes(), &failure); err != nil {
		t.Fatalf("Expected JSON failure body, got %q", recorder.Body.String())
	}
	return failure
}

func TestOnboardingRequestValid(t *testing.T) {
	var req OnboardingRequest
	recorder := postValidated(t, `{"name": "Asha", "weight": 80, "height": 178, "goal": "Lean bulk", "trainingFrequency": 4}`, &req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if float64(req.Weight) != 80 {
		t.Errorf("Expected weight 80, got %v", req.Weight)
	}
}

func TestOnboardingRequestAcceptsNumericStrings(t *testing.T) {
	var req OnboardingRequest
	recorder := postValidated(t, `{"name": "Asha", "weight": "82.5", "goal": "Cut", "trainingFrequency": "5"}`, &req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if float64(req.Weight) != 82.5 {
		t.Errorf("Expected weight 82.5, got %v", req.Weight)
	}
	if int(req.TrainingFrequency) != 5 {
		t.Errorf("Expected frequency 5, got %v", req.TrainingFrequency)
	}
}

func TestOnboardingRequestWeightBounds(t *testing.T) {
	var req OnboardingRequest
	recorder := postValidated(t, `{"name": "Asha", "weight": 10, "goal": "Cut"}`, &req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", recorder.Code)
	}
	failure := decodeFailure(t, recorder)
	if failure.Error != "Validation failed" {
		t.Errorf("Expected validation failure envelope, got %q", failure.Error)
	}
	if len(failure.Details) != 1 || failure.Details[0].Field != "weight" {
		t.Errorf("Expected weight field error, got %v", failure.Details)
	}
}

func TestOnboardingRequestMissingRequired(t *testing.T) {
	var req OnboardingRequest
	recorder := postValidated(t, `{}`, &req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", recorder.Code)
	}
	failure := decodeFailure(t, recorder)
	fields := map[string]bool{}
	for _, detail := range failure.Details {
		fields[detail.Field] = true
	}
	if !fields["name"] || !fields["weight"] || !fields["goal"] {
		t.Errorf("Expected name, weight and goal errors, got %v", failure.Details)
	}
}

func TestOnboardingRequestOptionalPreferences(t *testing.T) {
	var req OnboardingRequest
	recorder := postValidated(t, `{"name": "Asha", "weight": 80, "goal": "Cut", "focus": "Hypertrophy", "dietPreference": "Vegetarian plan"}`, &req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if req.Focus != "Hypertrophy" || req.DietPreference != "Vegetarian plan" {
		t.Errorf("Expected preferences bound, got %q / %q", req.Focus, req.DietPreference)
	}

	var bad OnboardingRequest
	long := strings.Repeat("x", 101)
	recorder = postValidated(t, `{"name": "Asha", "weight": 80, "goal": "Cut", "dietPreference": "`+long+`"}`, &bad)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for oversized diet preference, got %d", recorder.Code)
	}
}

func TestMealRequestCoercesFormattedNumbers(t *testing.T) {
	var req MealRequest
	recorder := postValidated(t, `{"title": "Paneer wrap", "calories": "520 kcal", "protein": "42g", "mealType": "Post Workout"}`, &req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if float64(req.Calories) != 520 {
		t.Errorf("Expected calories coerced to 520, got %v", req.Calories)
	}
	if float64(req.Protein) != 42 {
		t.Errorf("Expected protein coerced to 42, got %v", req.Protein)
	}
}

func TestMealRequestNumberBounds(t *testing.T) {
	var req MealRequest
	recorder := postValidated(t, `{"title": "Feast", "calories": 20000}`, &req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for 20000 kcal, got %d", recorder.Code)
	}
	failure := decodeFailure(t, recorder)
	if len(failure.Details) != 1 || failure.Details[0].Field != "calories" {
		t.Errorf("Expected calories error, got %v", failure.Details)
	}

	var protein MealRequest
	recorder = postValidated(t, `{"title": "Shake", "protein": 501}`, &protein)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for 501 g protein, got %d", recorder.Code)
	}
}

func TestMealRequestTitleLength(t *testing.T) {
	var req MealRequest
	long := strings.Repeat("x", 201)
	recorder := postValidated(t, `{"title": "`+long+`"}`, &req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for oversized title, got %d", recorder.Code)
	}
}

func TestMealTypeEnumAcceptsAllSlots(t *testing.T) {
	for _, mealType := range []string{
		"Breakfast", "Morning Snack", "Lunch", "Evening Snack",
		"Dinner", "Post Workout", "Dessert", "Snack",
	} {
		var req MealSuggestionRequest
		recorder := postValidated(t, `{"query": "dal", "mealType": "`+mealType+`"}`, &req)
		if recorder.Code != http.StatusOK {
			t.Errorf("Expected 200 for meal type %q, got %d", mealType, recorder.Code)
		}
	}
}

func TestMealSuggestionRequestQueryLength(t *testing.T) {
	var req MealSuggestionRequest
	long := strings.Repeat("x", 501)
	recorder := postValidated(t, `{"query": "`+long+`"}`, &req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for oversized query, got %d", recorder.Code)
	}
}

func TestMealSuggestionRequestMealTypeEnum(t *testing.T) {
	var req MealSuggestionRequest
	recorder := postValidated(t, `{"query": "dal", "mealType": "Brunch"}`, &req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for unknown meal type, got %d", recorder.Code)
	}
	failure := decodeFailure(t, recorder)
	if len(failure.Details) != 1 || failure.Details[0].Field != "mealType" {
		t.Errorf("Expected mealType error, got %v", failure.Details)
	}
}

func TestPlanGenerationRequestDayBounds(t *testing.T) {
	var req PlanGenerationRequest
	recorder := postValidated(t, `{"trainingDays": 2}`, &req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for 2 training days, got %d", recorder.Code)
	}

	var ok PlanGenerationRequest
	recorder = postValidated(t, `{"trainingDays": 5}`, &ok)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200 for 5 training days, got %d", recorder.Code)
	}
}

func TestMalformedBody(t *testing.T) {
	var req MealSuggestionRequest
	recorder := postValidated(t, `{"query": `, &req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for malformed JSON, got %d", recorder.Code)
	}
	failure := decodeFailure(t, recorder)
	if len(failure.Details) != 1 || failure.Details[0].Field != "body" {
		t.Errorf("Expected body-level error, got %v", failure.Details)
	}
}
