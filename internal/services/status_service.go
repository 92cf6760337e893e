package services

import (
	"errors"
	"fmt"

	"github.com/vergaracl/fitfam/internal/models"
)

var ErrStatusLoadFailed = errors.New("load week status failed")

type StatusUserReader interface {
	List() ([]models.User, error)
	FindByID(userID string) (models.User, bool, error)
	SumWalletBalances() (int, error)
}

type StatusWorkoutReader interface {
	CountByUserAndWeek(userID string, weekID string) (int, error)
}

type StatusAbsenceReader interface {
	ListByUser(userID string) ([]models.Absence, error)
}

// StatusService derives the live, pre-settlement view of a member's week.
// Read-only; settlement may lag behind what this reports.
type StatusService struct {
	users    StatusUserReader
	workouts StatusWorkoutReader
	absences StatusAbsenceReader
}

type WeekStatus struct {
	UserID           string  `json:"user_id"`
	Name             string  `json:"name"`
	Sessions         int     `json:"sessions"`
	TotalRequired    int     `json:"total_required"`
	RegularSessions  int     `json:"regular_sessions"`
	RecoverySessions int     `json:"recovery_sessions"`
	BonusSessions    int     `json:"bonus_sessions"`
	Frozen           bool    `json:"frozen"`
	GoalMet          bool    `json:"goal_met"`
	Progress         float64 `json:"progress"`
	CanEarnLife      bool    `json:"can_earn_life"`
	ExtraLives       int     `json:"extra_lives"`
	HasShield        bool    `json:"has_shield"`
	WalletBalance    int     `json:"wallet_balance"`
}

func NewStatusService(users StatusUserReader, workouts StatusWorkoutReader, absences StatusAbsenceReader) *StatusService {
	return &StatusService{
		users:    users,
		workouts: workouts,
		absences: absences,
	}
}

func (service *StatusService) WeekStatusForUser(userID string, weekID string) (WeekStatus, error) {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return WeekStatus{}, fmt.Errorf("%w: %v", ErrStatusLoadFailed, err)
	}
	if !found {
		return WeekStatus{}, fmt.Errorf("%w: unknown user %s", ErrStatusLoadFailed, userID)
	}
	return service.buildStatus(user, weekID)
}

func (service *StatusService) WeekStatusForAll(weekID string) ([]WeekStatus, error) {
	users, err := service.users.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatusLoadFailed, err)
	}

	statuses := make([]WeekStatus, 0, len(users))
	for _, user := range users {
		status, err := service.buildStatus(user, weekID)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// PotTotal is the shared pot: every member's accumulated fines.
func (service *StatusService) PotTotal() (int, error) {
	total, err := service.users.SumWalletBalances()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStatusLoadFailed, err)
	}
	return total, nil
}

func (service *StatusService) buildStatus(user models.User, weekID string) (WeekStatus, error) {
	sessions, err := service.workouts.CountByUserAndWeek(user.ID, weekID)
	if err != nil {
		return WeekStatus{}, fmt.Errorf("%w: %v", ErrStatusLoadFailed, err)
	}

	absences, err := service.absences.ListByUser(user.ID)
	if err != nil {
		return WeekStatus{}, fmt.Errorf("%w: %v", ErrStatusLoadFailed, err)
	}

	frozen := weekFrozen(absences, weekID)
	recoverySessions := recoverySessionsOwed(absences, weekID)

	totalRequired := 0
	if !frozen {
		totalRequired = WeeklyGoal + recoverySessions
	}

	status := WeekStatus{
		UserID:           user.ID,
		Name:             user.Name,
		Sessions:         sessions,
		TotalRequired:    totalRequired,
		RegularSessions:  min(sessions, WeeklyGoal),
		RecoverySessions: recoverySessions,
		BonusSessions:    max(0, sessions-WeeklyGoal-recoverySessions),
		Frozen:           frozen,
		GoalMet:          sessions >= totalRequired,
		Progress:         1,
		CanEarnLife:      !frozen && sessions >= ExtraLifeThreshold+recoverySessions,
		ExtraLives:       user.ExtraLives,
		HasShield:        user.HasShield,
		WalletBalance:    user.WalletBalance,
	}
	if totalRequired > 0 {
		status.Progress = min(1, float64(sessions)/float64(totalRequired))
	}
	return status, nil
}
