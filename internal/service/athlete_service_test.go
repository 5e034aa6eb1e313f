package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubObjectStorage struct {
	lastKey         string
	lastContentType string
	deletedKey      string
	url             string
	err             error
}

func (s *stubObjectStorage) PresignUpload(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	s.lastKey = objectKey
	s.lastContentType = contentType
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func (s *stubObjectStorage) PresignDownload(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	s.lastKey = objectKey
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func (s *stubObjectStorage) Delete(ctx context.Context, objectKey string) error {
	s.deletedKey = objectKey
	if s.err != nil {
		return s.err
	}
	return nil
}

func newTestAthleteService(repo *stubAthleteRepo, files *stubObjectStorage) *athleteService {
	if files == nil {
		files = &stubObjectStorage{url: "https://storage.example/upload"}
	}
	svc := NewAthleteService(repo, files, nil).(*athleteService)
	svc.now = func() time.Time { return fixedTime }
	svc.newID = func() string { return "fixed-id" }
	return svc
}

func TestOnboardPersonalizesFromWeight(t *testing.T) {
	repo := newStubAthleteRepo()
	svc := newTestAthleteService(repo, nil)

	athlete, created, err := svc.Onboard(context.Background(), "user-1", OnboardingInput{
		Name:              "Asha",
		Email:             "asha@example.com",
		Age:               31,
		WeightKg:          80,
		HeightCm:          170,
		Goal:              "Lean bulk",
		TrainingFrequency: 4,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !created {
		t.Error("Expected fresh document reported as created")
	}

	if athlete.GoalPrescription.Calories != "2560 kcal / day" {
		t.Errorf("Expected 32 kcal per kg, got %q", athlete.GoalPrescription.Calories)
	}
	if athlete.GoalPrescription.ProteinTarget != "160 g protein" {
		t.Errorf("Expected 2 g protein per kg, got %q", athlete.GoalPrescription.ProteinTarget)
	}
	if athlete.Profile.FitnessLevel != "Advanced hybrid" {
		t.Errorf("Expected Advanced hybrid for 4 sessions, got %q", athlete.Profile.FitnessLevel)
	}
	if athlete.Profile.Weight != "80 kg" || athlete.Profile.Height != "170 cm" {
		t.Errorf("Expected formatted measurements, got %q %q", athlete.Profile.Weight, athlete.Profile.Height)
	}
	if athlete.OverviewStats[0].Value != "144g" || athlete.OverviewStats[0].Unit != "of 160g" {
		t.Errorf("Expected protein gauge at 1.8 g/kg of 2 g/kg, got %q %q",
			athlete.OverviewStats[0].Value, athlete.OverviewStats[0].Unit)
	}
	if athlete.HeroBadges[0] != "Lean bulk mode" || athlete.HeroBadges[1] != "4-day cadence" {
		t.Errorf("Expected personalized badges, got %v", athlete.HeroBadges)
	}

	var proteinSplit string
	for _, split := range athlete.MacroSplits {
		if split.Label == "Protein" {
			proteinSplit = split.Value
		}
	}
	if proteinSplit != "144g" {
		t.Errorf("Expected protein split updated, got %q", proteinSplit)
	}
	if athlete.AnalyticsDays[0].Date != "2026-08-29" {
		t.Errorf("Expected today's analytics date stamped, got %q", athlete.AnalyticsDays[0].Date)
	}
}

func TestOnboardDietPreferenceThreadsThrough(t *testing.T) {
	repo := newStubAthleteRepo()
	svc := newTestAthleteService(repo, nil)

	athlete, _, err := svc.Onboard(context.Background(), "user-1", OnboardingInput{
		WeightKg:          70,
		Goal:              "Cut",
		Focus:             "Strength endurance",
		DietPreference:    "Vegetarian plan",
		TrainingFrequency: 5,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if athlete.Profile.Focus != "Strength endurance" {
		t.Errorf("Expected focus stored, got %q", athlete.Profile.Focus)
	}
	if athlete.GoalPrescription.DietPlan != "Vegetarian plan" {
		t.Errorf("Expected diet plan from preference, got %q", athlete.GoalPrescription.DietPlan)
	}
	if athlete.HeroBadges[2] != "Vegetarian fueled" {
		t.Errorf("Expected diet badge without plan suffix, got %q", athlete.HeroBadges[2])
	}
	if athlete.PlanTracks[0].Focus != "Cut" {
		t.Errorf("Expected first plan track focused on goal, got %q", athlete.PlanTracks[0].Focus)
	}
	if athlete.PlanTracks[0].Detail != "Dialed for 5 sessions · Vegetarian plan" {
		t.Errorf("Expected plan track detail personalized, got %q", athlete.PlanTracks[0].Detail)
	}
}

func TestOnboardDietPreferenceDefaults(t *testing.T) {
	repo := newStubAthleteRepo()
	svc := newTestAthleteService(repo, nil)

	athlete, _, err := svc.Onboard(context.Background(), "user-1", OnboardingInput{WeightKg: 70, Goal: "Cut"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if athlete.GoalPrescription.DietPlan != "High-protein flex plan" {
		t.Errorf("Expected default diet plan, got %q", athlete.GoalPrescription.DietPlan)
	}
	if athlete.HeroBadges[2] != "High-protein flex fueled" {
		t.Errorf("Expected default diet badge, got %q", athlete.HeroBadges[2])
	}
}

func TestOnboardFitnessLevels(t *testing.T) {
	tests := []struct {
		frequency int
		want      string
	}{
		{7, "Elite hybrid"},
		{5, "Elite hybrid"},
		{4, "Advanced hybrid"},
		{3, "Advanced hybrid"},
		{2, "Rebuild cadence"},
		{0, "Rebuild cadence"},
	}
	for _, tt := range tests {
		if got := fitnessLevelFor(tt.frequency); got != tt.want {
			t.Errorf("Expected %q for %d sessions, got %q", tt.want, tt.frequency, got)
		}
	}
}

func TestOnboardAgainKeepsIdentity(t *testing.T) {
	repo := newStubAthleteRepo()
	svc := newTestAthleteService(repo, nil)

	first, created, err := svc.Onboard(context.Background(), "user-1", OnboardingInput{WeightKg: 70, Goal: "Cut"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !created {
		t.Error("Expected first onboarding to create")
	}
	second, created, err := svc.Onboard(context.Background(), "user-1", OnboardingInput{WeightKg: 75, Goal: "Bulk"})
	if err != nil {
		t.Fatalf("Expected no error on re-onboard, got %v", err)
	}
	if created {
		t.Error("Expected re-onboarding to update, not create")
	}
	if second.ID != first.ID {
		t.Error("Expected document identity preserved across re-onboarding")
	}
	if second.GoalPrescription.Calories != "2400 kcal / day" {
		t.Errorf("Expected prescription recomputed, got %q", second.GoalPrescription.Calories)
	}
}

func TestAddMealPrependsAndMirrors(t *testing.T) {
	repo := newStubAthleteRepo(testAthlete("user-1"))
	svc := newTestAthleteService(repo, nil)

	athlete, err := svc.AddMeal(context.Background(), "user-1", MealInput{
		Title:    "Grilled chicken bowl",
		Calories: 520,
		Protein:  42,
		MealType: "Dinner",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if athlete.MealLog[0].Title != "Grilled chicken bowl" {
		t.Errorf("Expected new meal first in log, got %q", athlete.MealLog[0].Title)
	}
	if athlete.MealLog[0].Calories != "520 kcal" || athlete.MealLog[0].Protein != "42g" {
		t.Errorf("Expected formatted macros, got %q / %q", athlete.MealLog[0].Calories, athlete.MealLog[0].Protein)
	}
	if athlete.MealLog[0].Status != "manual" {
		t.Errorf("Expected default status manual, got %q", athlete.MealLog[0].Status)
	}

	todayMeals := athlete.AnalyticsDays[0].Meals
	last := todayMeals[len(todayMeals)-1]
	if last.Name != "Grilled chicken bowl" || last.MealType != "Dinner" {
		t.Errorf("Expected meal mirrored into today's analytics, got %+v", last)
	}
	if last.Protein != "42g protein" {
		t.Errorf("Expected analytics protein label, got %q", last.Protein)
	}
}

func TestAnalyticsDayLookup(t *testing.T) {
	repo := newStubAthleteRepo(testAthlete("user-1"))
	svc := newTestAthleteService(repo, nil)

	day, err := svc.AnalyticsDay(context.Background(), "user-1", "yesterday")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if day.ID != "yesterday" {
		t.Errorf("Expected yesterday, got %q", day.ID)
	}

	if _, err := svc.AnalyticsDay(context.Background(), "user-1", "1999-01-01"); !errors.Is(err, ErrAnalyticsDayNotFound) {
		t.Errorf("Expected ErrAnalyticsDayNotFound, got %v", err)
	}
}

func TestMealPhotoUploadURL(t *testing.T) {
	files := &stubObjectStorage{url: "https://storage.example/upload"}
	repo := newStubAthleteRepo(testAthlete("user-1"))
	svc := newTestAthleteService(repo, files)

	ticket, err := svc.MealPhotoUploadURL(context.Background(), "user-1", "lunch.JPG", "image/jpeg")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ticket.UploadURL != "https://storage.example/upload" {
		t.Errorf("Expected presigned URL, got %q", ticket.UploadURL)
	}
	if files.lastKey != "meal-photos/user-1/fixed-id.jpg" {
		t.Errorf("Expected namespaced key, got %q", files.lastKey)
	}
	if files.lastContentType != "image/jpeg" {
		t.Errorf("Expected content type forwarded, got %q", files.lastContentType)
	}
}

func TestMealPhotoUploadURLRejectsNonImages(t *testing.T) {
	svc := newTestAthleteService(newStubAthleteRepo(testAthlete("user-1")), nil)

	_, err := svc.MealPhotoUploadURL(context.Background(), "user-1", "notes.pdf", "application/pdf")
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("Expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestMealPhotoUploadURLExtensionFromContentType(t *testing.T) {
	files := &stubObjectStorage{url: "https://storage.example/upload"}
	svc := newTestAthleteService(newStubAthleteRepo(testAthlete("user-1")), files)

	if _, err := svc.MealPhotoUploadURL(context.Background(), "user-1", "photo", "image/png"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasSuffix(files.lastKey, ".png") {
		t.Errorf("Expected extension derived from content type, got %q", files.lastKey)
	}
}

func TestMealPhotoDownloadURL(t *testing.T) {
	files := &stubObjectStorage{url: "https://storage.example/photo"}
	svc := newTestAthleteService(newStubAthleteRepo(testAthlete("user-1")), files)

	url, err := svc.MealPhotoDownloadURL(context.Background(), "user-1", "meal-photos/user-1/abc.jpg")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if url != "https://storage.example/photo" {
		t.Errorf("Expected presigned download URL, got %q", url)
	}
	if files.lastKey != "meal-photos/user-1/abc.jpg" {
		t.Errorf("Expected key forwarded, got %q", files.lastKey)
	}
}

func TestMealPhotoDownloadURLRejectsForeignKey(t *testing.T) {
	svc := newTestAthleteService(newStubAthleteRepo(testAthlete("user-1")), nil)

	_, err := svc.MealPhotoDownloadURL(context.Background(), "user-1", "meal-photos/user-2/abc.jpg")
	if !errors.Is(err, ErrPhotoNotFound) {
		t.Errorf("Expected ErrPhotoNotFound for another user's key, got %v", err)
	}
}

func TestDeleteMealPhoto(t *testing.T) {
	files := &stubObjectStorage{url: "https://storage.example/photo"}
	svc := newTestAthleteService(newStubAthleteRepo(testAthlete("user-1")), files)

	if err := svc.DeleteMealPhoto(context.Background(), "user-1", "meal-photos/user-1/abc.jpg"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if files.deletedKey != "meal-photos/user-1/abc.jpg" {
		t.Errorf("Expected object removed, got %q", files.deletedKey)
	}

	err := svc.DeleteMealPhoto(context.Background(), "user-1", "avatars/user-1/abc.jpg")
	if !errors.Is(err, ErrPhotoNotFound) {
		t.Errorf("Expected ErrPhotoNotFound outside photo namespace, got %v", err)
	}
}
