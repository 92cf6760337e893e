package api

import (
	"time"

	"github.com/vergaracl/fitfam/internal/db"
	"github.com/vergaracl/fitfam/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	repos        *db.Repositories
	secretKey    []byte
	location     *time.Location
	objects      services.ObjectStore
	cookieSecure bool
	now          func() time.Time

	auth           *services.AuthService
	status         *services.StatusService
	workouts       *services.WorkoutService
	absences       *services.AbsenceService
	justifications *services.JustificationService
	settlement     *services.SettlementService
	flags          *services.FlagService
}

func NewHandler(
	database *gorm.DB,
	secretKey string,
	location *time.Location,
	objects services.ObjectStore,
	judge services.ExcuseJudge,
	cookieSecure bool,
) *Handler {
	repos := db.NewRepositories(database)
	return &Handler{
		repos:          repos,
		secretKey:      []byte(secretKey),
		location:       location,
		objects:        objects,
		cookieSecure:   cookieSecure,
		now:            time.Now,
		auth:           services.NewAuthService(repos.Users),
		status:         services.NewStatusService(repos.Users, repos.Workouts, repos.Absences),
		workouts:       services.NewWorkoutService(repos.Workouts, objects),
		absences:       services.NewAbsenceService(repos.Absences),
		justifications: services.NewJustificationService(repos.Justifications, judge),
		settlement:     services.NewSettlementService(database),
		flags:          services.NewFlagService(database),
	}
}

// currentWeekID derives the week from the injected clock so tests can pin
// the calendar.
func (handler *Handler) currentWeekID() string {
	return services.WeekIDFor(handler.now().In(handler.location))
}

type loginInput struct {
	UserID string `json:"user_id" form:"user_id"`
	PIN    string `json:"pin" form:"pin"`
}

type closeWeekInput struct {
	WeekID string `json:"week_id" form:"week_id"`
}

type absenceInput struct {
	FrozenWeekID  string   `json:"frozen_week_id" form:"frozen_week_id"`
	RecoveryWeeks []string `json:"recovery_weeks" form:"recovery_weeks"`
}

type voteInput struct {
	Choice string `json:"choice" form:"choice"`
}

const (
	defaultAuthTokenTTL = 7 * 24 * time.Hour
	maxPhotoBytes       = 10 << 20
)
