package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"mime"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/Sudhikumaran/Protena-ai/internal/domain"
	"github.com/Sudhikumaran/Protena-ai/internal/repository"
	"github.com/Sudhikumaran/Protena-ai/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrAnalyticsDayNotFound = errors.New("analytics day not found")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrPhotoNotFound        = errors.New("meal photo not found")
)

// OnboardingInput is the validated payload from the onboarding form.
// WeightKg is the only field personalization strictly needs; the
// remaining fields refine the generated profile.
type OnboardingInput struct {
	Name              string
	Email             string
	Age               int
	WeightKg          float64
	HeightCm          float64
	Goal              string
	Focus             string
	DietPreference    string
	TrainingFrequency int
	BadHabits         []string
}

// MealInput is one manually logged meal. Calories and protein arrive
// already coerced to numbers; display strings are built here.
type MealInput struct {
	Title    string
	Calories float64
	Protein  float64
	MealType string
	Status   string
}

// UploadTicket is a presigned upload slot for a meal photo.
type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
	ExpiresIn int    `json:"expiresInSeconds"`
}

type AthleteService interface {
	// Onboard reports created=true when a fresh document was made rather
	// than an existing one rebuilt.
	Onboard(ctx context.Context, userID string, input OnboardingInput) (athlete *domain.Athlete, created bool, err error)
	Overview(ctx context.Context, userID string) (*domain.Athlete, error)
	AnalyticsDays(ctx context.Context, userID string) ([]domain.AnalyticsDay, error)
	AnalyticsDay(ctx context.Context, userID, dayID string) (*domain.AnalyticsDay, error)
	AddMeal(ctx context.Context, userID string, input MealInput) (*domain.Athlete, error)
	MealPhotoUploadURL(ctx context.Context, userID, fileName, contentType string) (*UploadTicket, error)
	MealPhotoDownloadURL(ctx context.Context, userID, objectKey string) (string, error)
	DeleteMealPhoto(ctx context.Context, userID, objectKey string) error
}

type athleteService struct {
	athleteRepo repository.AthleteRepository
	fileStorage storage.ObjectStorage
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
}

func NewAthleteService(athleteRepo repository.AthleteRepository, fileStorage storage.ObjectStorage, logger *slog.Logger) AthleteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &athleteService{
		athleteRepo: athleteRepo,
		fileStorage: fileStorage,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// fitnessLevelFor maps weekly training frequency to a display tier.
func fitnessLevelFor(trainingFrequency int) string {
	switch {
	case trainingFrequency >= 5:
		return "Elite hybrid"
	case trainingFrequency >= 3:
		return "Advanced hybrid"
	default:
		return "Rebuild cadence"
	}
}

// Onboard creates (or rebuilds) the athlete document from the starter
// template, personalized from body weight: 32 kcal and 2 g protein per kg
// per day, with the dashboard protein gauge assuming 1.8 g/kg consumed.
func (s *athleteService) Onboard(ctx context.Context, userID string, input OnboardingInput) (*domain.Athlete, bool, error) {
	existing, err := s.athleteRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	calories := int(math.Round(input.WeightKg * 32))
	proteinTarget := int(math.Round(input.WeightKg * 2))
	proteinToday := int(math.Round(input.WeightKg * 1.8))
	goal := firstNonEmpty(input.Goal, "Hybrid performance")
	dietPreference := firstNonEmpty(input.DietPreference, "High-protein flex plan")

	athlete := domain.NewBaseAthlete()
	athlete.UserID = userID
	athlete.Profile = domain.Profile{
		Name:         firstNonEmpty(input.Name, athlete.Profile.Name),
		Email:        firstNonEmpty(input.Email, athlete.Profile.Email),
		Focus:        firstNonEmpty(input.Focus, athlete.Profile.Focus),
		Age:          input.Age,
		Weight:       fmt.Sprintf("%.0f kg", input.WeightKg),
		Height:       fmt.Sprintf("%.0f cm", input.HeightCm),
		FitnessLevel: fitnessLevelFor(input.TrainingFrequency),
		BadHabits:    input.BadHabits,
		Goal:         goal,
	}
	athlete.GoalPrescription = domain.GoalPrescription{
		Calories:      fmt.Sprintf("%d kcal / day", calories),
		ProteinTarget: fmt.Sprintf("%d g protein", proteinTarget),
		DietPlan:      dietPreference,
		WorkoutPlan:   fmt.Sprintf("%d-day AI rotation", clampInt(input.TrainingFrequency, 1, 7)),
		Notes:         fmt.Sprintf("Calibrated for %s at %.0f kg.", goal, input.WeightKg),
	}
	athlete.OverviewStats[0] = domain.OverviewStat{
		Label: "Protein today",
		Value: fmt.Sprintf("%dg", proteinToday),
		Delta: "+0g",
		Unit:  fmt.Sprintf("of %dg", proteinTarget),
	}
	athlete.OverviewStats[1] = domain.OverviewStat{
		Label: "Training split",
		Value: fmt.Sprintf("%d day split", clampInt(input.TrainingFrequency, 1, 7)),
		Delta: "Adaptive",
		Unit:  "AI scheduled",
	}
	athlete.HeroBadges = []string{
		fmt.Sprintf("%s mode", goal),
		fmt.Sprintf("%d-day cadence", clampInt(input.TrainingFrequency, 1, 7)),
		fmt.Sprintf("%s fueled", strings.Replace(dietPreference, " plan", "", 1)),
	}
	if len(athlete.PlanTracks) > 0 {
		athlete.PlanTracks[0].Focus = goal
		athlete.PlanTracks[0].Detail = fmt.Sprintf("Dialed for %d sessions · %s",
			clampInt(input.TrainingFrequency, 1, 7), dietPreference)
	}
	for i := range athlete.MacroSplits {
		if athlete.MacroSplits[i].Label == "Protein" {
			athlete.MacroSplits[i].Value = fmt.Sprintf("%dg", proteinToday)
		}
	}
	today := s.now().Format("2006-01-02")
	if len(athlete.AnalyticsDays) > 0 {
		athlete.AnalyticsDays[0].Date = today
	}

	now := s.now().UTC()
	athlete.UpdatedAt = now

	if existing != nil {
		// Re-onboarding keeps the document identity but rebuilds the content.
		athlete.ID = existing.ID
		athlete.CreatedAt = existing.CreatedAt
		if err := s.athleteRepo.Save(ctx, athlete); err != nil {
			return nil, false, err
		}
		return athlete, false, nil
	}

	athlete.CreatedAt = now
	id, err := s.athleteRepo.Create(ctx, athlete)
	if err != nil {
		return nil, false, err
	}
	athlete.ID = id
	return athlete, true, nil
}

func (s *athleteService) Overview(ctx context.Context, userID string) (*domain.Athlete, error) {
	athlete, err := s.athleteRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	return athlete, nil
}

func (s *athleteService) AnalyticsDays(ctx context.Context, userID string) ([]domain.AnalyticsDay, error) {
	athlete, err := s.Overview(ctx, userID)
	if err != nil {
		return nil, err
	}
	if athlete.AnalyticsDays == nil {
		return []domain.AnalyticsDay{}, nil
	}
	return athlete.AnalyticsDays, nil
}

// AnalyticsDay resolves a day by its id ("today", "yesterday", ...) or by
// its YYYY-MM-DD date.
func (s *athleteService) AnalyticsDay(ctx context.Context, userID, dayID string) (*domain.AnalyticsDay, error) {
	athlete, err := s.Overview(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range athlete.AnalyticsDays {
		day := athlete.AnalyticsDays[i]
		if day.ID == dayID || day.Date == dayID {
			return &day, nil
		}
	}
	return nil, ErrAnalyticsDayNotFound
}

// formatMealNumber renders a coerced meal number without trailing zeros,
// so 520 stays "520" and 42.5 stays "42.5".
func formatMealNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// AddMeal prepends the meal to the dashboard log and mirrors it into
// today's analytics day.
func (s *athleteService) AddMeal(ctx context.Context, userID string, input MealInput) (*domain.Athlete, error) {
	athlete, err := s.Overview(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := firstNonEmpty(input.Status, "manual")
	proteinGrams := formatMealNumber(input.Protein)
	entry := domain.MealLogEntry{
		Title:    input.Title,
		Calories: formatMealNumber(input.Calories) + " kcal",
		Protein:  proteinGrams + "g",
		Status:   status,
		MealType: firstNonEmpty(input.MealType, "Snack"),
	}
	athlete.MealLog = append([]domain.MealLogEntry{entry}, athlete.MealLog...)

	if len(athlete.AnalyticsDays) > 0 {
		meal := domain.AnalyticsMeal{
			Name:     entry.Title,
			Time:     s.now().Format("03:04 PM"),
			Calories: entry.Calories,
			Protein:  proteinGrams + "g protein",
			Source:   status,
			MealType: entry.MealType,
		}
		athlete.AnalyticsDays[0].Meals = append(athlete.AnalyticsDays[0].Meals, meal)
	}

	athlete.UpdatedAt = s.now().UTC()
	if err := s.athleteRepo.Save(ctx, athlete); err != nil {
		return nil, err
	}
	return athlete, nil
}

// MealPhotoUploadURL issues a presigned PUT for a meal photo. Only image
// content types are accepted; keys are namespaced per user.
func (s *athleteService) MealPhotoUploadURL(ctx context.Context, userID, fileName, contentType string) (*UploadTicket, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return nil, ErrUnsupportedFileType
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
	if ext == "" {
		ext = strings.TrimPrefix(mediaType, "image/")
	}
	objectKey := fmt.Sprintf("meal-photos/%s/%s.%s", userID, s.newID(), ext)

	uploadURL, err := s.fileStorage.PresignUpload(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		s.logger.Error("meal photo presign failed", "user", userID, "error", err)
		return nil, err
	}

	return &UploadTicket{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		ExpiresIn: int(storage.DefaultPresignedURLExpiry.Seconds()),
	}, nil
}

// ownsPhotoKey checks that objectKey sits inside the user's namespace,
// so one athlete cannot read or remove another's photos.
func ownsPhotoKey(userID, objectKey string) bool {
	return strings.HasPrefix(objectKey, "meal-photos/"+userID+"/")
}

// MealPhotoDownloadURL issues a presigned GET for a photo the user
// uploaded earlier.
func (s *athleteService) MealPhotoDownloadURL(ctx context.Context, userID, objectKey string) (string, error) {
	if !ownsPhotoKey(userID, objectKey) {
		return "", ErrPhotoNotFound
	}
	downloadURL, err := s.fileStorage.PresignDownload(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		s.logger.Error("meal photo download presign failed", "user", userID, "error", err)
		return "", err
	}
	return downloadURL, nil
}

// DeleteMealPhoto removes an uploaded photo from object storage.
func (s *athleteService) DeleteMealPhoto(ctx context.Context, userID, objectKey string) error {
	if !ownsPhotoKey(userID, objectKey) {
		return ErrPhotoNotFound
	}
	if err := s.fileStorage.Delete(ctx, objectKey); err != nil {
		s.logger.Error("meal photo delete failed", "user", userID, "key", objectKey, "error", err)
		return err
	}
	return nil
}
