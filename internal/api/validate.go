package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// flexFloat accepts both JSON numbers and numeric strings so clients that
// serialize form values as strings still validate.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*f = flexFloat(parsed)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexInt is flexFloat's integer counterpart.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var v flexFloat
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	*f = flexInt(v)
	return nil
}

// mealNumber tolerates the formatted strings meal clients send
// ("520 kcal", "42g") by keeping only the numeric run. Strings with no
// usable number coerce to zero.
type mealNumber float64

func (m *mealNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] != '"' {
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*m = mealNumber(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var digits strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			digits.WriteRune(r)
		}
	}
	parsed, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		*m = 0
		return nil
	}
	*m = mealNumber(parsed)
	return nil
}

// --- Request Structs ---

type OnboardingRequest struct {
	Name              string    `json:"name" validate:"required,min=1,max=100"`
	Email             string    `json:"email" validate:"omitempty,email"`
	Age               flexInt   `json:"age" validate:"omitempty,min=13,max=100"`
	Weight            flexFloat `json:"weight" validate:"required,min=20,max=300"`
	Height            flexFloat `json:"height" validate:"omitempty,min=100,max=250"`
	Goal              string    `json:"goal" validate:"required,max=100"`
	Focus             string    `json:"focus" validate:"omitempty,max=100"`
	DietPreference    string    `json:"dietPreference" validate:"omitempty,max=100"`
	TrainingFrequency flexInt   `json:"trainingFrequency" validate:"omitempty,min=1,max=7"`
	BadHabits         []string  `json:"badHabits" validate:"omitempty,max=10,dive,max=100"`
}

type MealRequest struct {
	Title    string     `json:"title" validate:"required,min=1,max=200"`
	Calories mealNumber `json:"calories" validate:"omitempty,min=0,max=10000"`
	Protein  mealNumber `json:"protein" validate:"omitempty,min=0,max=500"`
	MealType string     `json:"mealType" validate:"omitempty,oneof=Breakfast 'Morning Snack' Lunch 'Evening Snack' Dinner 'Post Workout' Dessert Snack"`
	Status   string     `json:"status" validate:"omitempty,oneof=manual camera verified ai"`
}

type MealSuggestionRequest struct {
	Query    string `json:"query" validate:"required,min=1,max=500"`
	MealType string `json:"mealType" validate:"omitempty,oneof=Breakfast 'Morning Snack' Lunch 'Evening Snack' Dinner 'Post Workout' Dessert Snack"`
}

type PlanGenerationRequest struct {
	Prompt       string  `json:"prompt" validate:"omitempty,max=1000"`
	TrainingDays flexInt `json:"trainingDays" validate:"omitempty,min=3,max=7"`
}

type MealPhotoRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
}

// --- Validation Plumbing ---

var validate = newValidator()

// newValidator configures field-name reporting to use json tags so error
// details line up with the request payload.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError is one entry of a validation failure response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must be at most %s long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// bindAndValidate decodes the JSON body into req and runs struct
// validation. On failure it writes the 400 response and reports false.
func bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": []FieldError{{Field: "body", Message: "must be valid JSON"}},
		})
		return false
	}

	if err := validate.Struct(req); err != nil {
		var details []FieldError
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fe := range fieldErrors {
				details = append(details, FieldError{Field: fe.Field(), Message: fieldErrorMessage(fe)})
			}
		} else {
			details = append(details, FieldError{Field: "body", Message: err.Error()})
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": details,
		})
		return false
	}
	return true
}
