package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/vergaracl/fitfam/internal/models"
)

var (
	ErrAbsenceInvalid      = errors.New("invalid absence plan")
	ErrAbsenceSaveFailed   = errors.New("save absence failed")
	ErrAbsenceAlreadySet   = errors.New("week already frozen")
	ErrAbsenceLoadFailed   = errors.New("load absences failed")
	ErrRecoveryNotAdjacent = errors.New("recovery week not adjacent to frozen week")
)

type AbsenceStore interface {
	ListByUser(userID string) ([]models.Absence, error)
	FindByUserAndFrozenWeek(userID string, weekID string) (models.Absence, bool, error)
	Create(absence *models.Absence) error
}

// AbsenceService freezes a week and spreads its missed sessions over the
// user's chosen recovery weeks.
type AbsenceService struct {
	absences AbsenceStore
}

func NewAbsenceService(absences AbsenceStore) *AbsenceService {
	return &AbsenceService{absences: absences}
}

// PlanAbsence records a frozen week. recoveryWeeks keeps the caller's
// selection order: distribution is ceiling-per-week, so with 3 owed sessions
// over 2 weeks the first selected week takes 2 and the second takes 1.
func (service *AbsenceService) PlanAbsence(userID string, frozenWeekID string, recoveryWeeks []string) (models.Absence, error) {
	if !IsValidWeekID(frozenWeekID) {
		return models.Absence{}, fmt.Errorf("%w: bad frozen week id %q", ErrAbsenceInvalid, frozenWeekID)
	}
	if len(recoveryWeeks) == 0 {
		return models.Absence{}, fmt.Errorf("%w: at least one recovery week required", ErrAbsenceInvalid)
	}

	adjacent, _ := AdjacentWeekIDs(frozenWeekID, 2, 2, time.UTC)
	seen := make(map[string]bool, len(recoveryWeeks))
	for _, weekID := range recoveryWeeks {
		if seen[weekID] {
			return models.Absence{}, fmt.Errorf("%w: duplicate recovery week %s", ErrAbsenceInvalid, weekID)
		}
		seen[weekID] = true
		if !containsWeek(adjacent, weekID) {
			return models.Absence{}, fmt.Errorf("%w: %s", ErrRecoveryNotAdjacent, weekID)
		}
	}

	if _, exists, err := service.absences.FindByUserAndFrozenWeek(userID, frozenWeekID); err != nil {
		return models.Absence{}, fmt.Errorf("%w: %v", ErrAbsenceSaveFailed, err)
	} else if exists {
		return models.Absence{}, ErrAbsenceAlreadySet
	}

	absence := models.Absence{
		UserID:                        userID,
		FrozenWeekID:                  frozenWeekID,
		RecoveryWeeks:                 recoveryWeeks,
		MissedSessionsPerRecoveryWeek: DistributeMissedSessions(WeeklyGoal, recoveryWeeks),
		Status:                        models.AbsenceStatusActive,
	}
	if err := service.absences.Create(&absence); err != nil {
		return models.Absence{}, fmt.Errorf("%w: %v", ErrAbsenceSaveFailed, err)
	}
	return absence, nil
}

func (service *AbsenceService) ListForUser(userID string) ([]models.Absence, error) {
	absences, err := service.absences.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAbsenceLoadFailed, err)
	}
	return absences, nil
}

// DistributeMissedSessions assigns ceil(goal/len) sessions to each recovery
// week in selection order; later weeks take what remains, so the sum is
// always exactly goal.
func DistributeMissedSessions(goal int, recoveryWeeks []string) map[string]int {
	perWeek := (goal + len(recoveryWeeks) - 1) / len(recoveryWeeks)
	distribution := make(map[string]int, len(recoveryWeeks))
	remaining := goal
	for _, weekID := range recoveryWeeks {
		assigned := min(perWeek, remaining)
		distribution[weekID] = assigned
		remaining -= assigned
	}
	return distribution
}

func containsWeek(weeks []string, weekID string) bool {
	for _, candidate := range weeks {
		if candidate == weekID {
			return true
		}
	}
	return false
}
