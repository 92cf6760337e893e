package services

import (
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/vergaracl/fitfam/internal/models"
)

var (
	ErrWorkoutInvalid      = errors.New("invalid workout")
	ErrWorkoutPhotoTooOld  = errors.New("photo date does not match workout date")
	ErrWorkoutSaveFailed   = errors.New("save workout failed")
	ErrPhotoUploadFailed   = errors.New("photo upload failed")
	ErrWorkoutsLoadFailed  = errors.New("load workouts failed")
	ErrWorkoutDurationOdd  = errors.New("duration must be between 1 and 600 minutes")
	ErrUnknownExerciseType = errors.New("unknown exercise type")
)

type WorkoutStore interface {
	Create(workout *models.Workout) error
	ListByUser(userID string) ([]models.Workout, error)
	ListRecent(limit int) ([]models.Workout, error)
}

type ObjectStore interface {
	Upload(path string, data []byte) (string, error)
}

// WorkoutService logs sessions. A photo, when provided, is validated against
// the claimed date first and uploaded only if the check passes; the photo
// URL is attached after a successful upload, so a failed upload leaves no
// partial state.
type WorkoutService struct {
	workouts WorkoutStore
	objects  ObjectStore
}

type WorkoutInput struct {
	UserID       string
	Date         time.Time
	Exercise     string
	DurationMin  int
	Description  string
	Photo        []byte
	PhotoExt     string
	PhotoModTime time.Time
}

func NewWorkoutService(workouts WorkoutStore, objects ObjectStore) *WorkoutService {
	return &WorkoutService{
		workouts: workouts,
		objects:  objects,
	}
}

func (service *WorkoutService) LogWorkout(input WorkoutInput) (models.Workout, PhotoDateResult, error) {
	if input.Date.IsZero() {
		return models.Workout{}, PhotoDateResult{}, fmt.Errorf("%w: date required", ErrWorkoutInvalid)
	}
	if !models.IsExerciseType(input.Exercise) {
		return models.Workout{}, PhotoDateResult{}, fmt.Errorf("%w: %q", ErrUnknownExerciseType, input.Exercise)
	}
	if input.DurationMin < 1 || input.DurationMin > 600 {
		return models.Workout{}, PhotoDateResult{}, ErrWorkoutDurationOdd
	}

	photoCheck := PhotoDateResult{Valid: true}
	photoURL := ""
	if len(input.Photo) > 0 {
		photoCheck = ValidatePhotoDate(input.Photo, input.PhotoModTime, input.Date)
		if !photoCheck.Valid {
			return models.Workout{}, photoCheck, ErrWorkoutPhotoTooOld
		}

		url, err := service.objects.Upload(workoutPhotoPath(input), input.Photo)
		if err != nil {
			return models.Workout{}, photoCheck, fmt.Errorf("%w: %v", ErrPhotoUploadFailed, err)
		}
		photoURL = url
	}

	workout := models.Workout{
		UserID:      input.UserID,
		Date:        dateOnly(input.Date),
		WeekID:      WeekIDFor(input.Date),
		Exercise:    input.Exercise,
		DurationMin: input.DurationMin,
		Description: input.Description,
		PhotoURL:    photoURL,
	}
	if err := service.workouts.Create(&workout); err != nil {
		return models.Workout{}, photoCheck, fmt.Errorf("%w: %v", ErrWorkoutSaveFailed, err)
	}
	return workout, photoCheck, nil
}

func (service *WorkoutService) HistoryForUser(userID string) ([]models.Workout, error) {
	workouts, err := service.workouts.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkoutsLoadFailed, err)
	}
	return workouts, nil
}

func (service *WorkoutService) Feed(limit int) ([]models.Workout, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	workouts, err := service.workouts.ListRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkoutsLoadFailed, err)
	}
	return workouts, nil
}

func workoutPhotoPath(input WorkoutInput) string {
	ext := input.PhotoExt
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%s_%s%s", input.Date.Format("2006-01-02"), uuid.NewString(), ext)
	return path.Join("workouts", input.UserID, name)
}
