package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vergaracl/fitfam/internal/db"
	"github.com/vergaracl/fitfam/internal/models"
	"gorm.io/gorm"
)

var ErrSettlementFailed = errors.New("settlement failed")

// SettlementService closes a week: it turns each member's session count,
// recovery obligations and adjudicated excuse into a ledger transition and
// one immutable weekly summary. The unique (user_id, week_id) index on
// weekly_summaries is the closed-week guard; a member whose summary already
// exists is skipped, so re-running a close is a reported no-op instead of a
// double charge.
type SettlementService struct {
	database *gorm.DB
}

type SettlementResult struct {
	UserID  string                `json:"user_id"`
	Skipped bool                  `json:"skipped"`
	Summary *models.WeeklySummary `json:"summary,omitempty"`
}

func NewSettlementService(database *gorm.DB) *SettlementService {
	return &SettlementService{database: database}
}

// CloseWeek settles every member for the given week. Each member is settled
// in their own transaction: a failure for one member does not roll back the
// others, and two concurrent closes race only on the summary insert, where
// exactly one wins.
func (service *SettlementService) CloseWeek(weekID string) ([]SettlementResult, error) {
	if !IsValidWeekID(weekID) {
		return nil, fmt.Errorf("%w: invalid week id %q", ErrSettlementFailed, weekID)
	}

	users, err := db.NewUserRepository(service.database).List()
	if err != nil {
		return nil, fmt.Errorf("%w: load users: %v", ErrSettlementFailed, err)
	}

	results := make([]SettlementResult, 0, len(users))
	for _, user := range users {
		result, err := service.settleUser(user.ID, weekID)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (service *SettlementService) settleUser(userID string, weekID string) (SettlementResult, error) {
	result := SettlementResult{UserID: userID}

	err := service.database.Transaction(func(tx *gorm.DB) error {
		repos := db.NewRepositories(tx)

		if _, exists, err := repos.Summaries.FindByUserAndWeek(userID, weekID); err != nil {
			return err
		} else if exists {
			result.Skipped = true
			return nil
		}

		user, found, err := repos.Users.FindByID(userID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("user %s not found", userID)
		}

		absences, err := repos.Absences.ListByUser(userID)
		if err != nil {
			return err
		}

		if weekFrozen(absences, weekID) {
			summary := frozenSummary(userID, weekID)
			if err := tx.Create(&summary).Error; err != nil {
				return err
			}
			result.Summary = &summary
			return nil
		}

		sessions, err := repos.Workouts.CountByUserAndWeek(userID, weekID)
		if err != nil {
			return err
		}

		justification, justified, err := repos.Justifications.FindByUserAndWeek(userID, weekID)
		if err != nil {
			return err
		}
		hasAcceptedExcuse := justified && justification.AIVerdict

		outcome := SettleUser(LedgerState{
			ExtraLives:           user.ExtraLives,
			CurrentFineLevel:     user.CurrentFineLevel,
			ConsecutiveSuccesses: user.ConsecutiveSuccesses,
			ConsecutiveMisses:    user.ConsecutiveMisses,
			HasShield:            user.HasShield,
		}, sessions, recoverySessionsOwed(absences, weekID), hasAcceptedExcuse)

		summary := outcome.Summary
		summary.UserID = userID
		summary.WeekID = weekID
		if err := tx.Create(&summary).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"extra_lives":           outcome.Ledger.ExtraLives,
			"wallet_balance":        user.WalletBalance + summary.FineApplied,
			"current_fine_level":    outcome.Ledger.CurrentFineLevel,
			"consecutive_misses":    outcome.Ledger.ConsecutiveMisses,
			"consecutive_successes": outcome.Ledger.ConsecutiveSuccesses,
			"has_shield":            outcome.Ledger.HasShield,
		}
		if err := repos.Users.UpdateByID(userID, updates); err != nil {
			return err
		}

		result.Summary = &summary
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent close inserted the summary first.
			return SettlementResult{UserID: userID, Skipped: true}, nil
		}
		return result, fmt.Errorf("%w: settle %s for %s: %v", ErrSettlementFailed, userID, weekID, err)
	}
	return result, nil
}

// LedgerState is the mutable game state carried by a member between weeks.
type LedgerState struct {
	ExtraLives           int
	CurrentFineLevel     int
	ConsecutiveSuccesses int
	ConsecutiveMisses    int
	HasShield            bool
}

type SettlementOutcome struct {
	Ledger  LedgerState
	Summary models.WeeklySummary
}

// SettleUser is the pure weekly state transition for a non-frozen week.
//
// Deficit <= 0 is a success: the fine level halves (floored at BaseFine),
// the streak grows, four straight successes earn a shield, and five or more
// own sessions (recovery work does not count) earn an extra life. A deficit
// of exactly one can be paid with a banked life and then counts as a
// success. Anything worse needs an accepted excuse, which freezes the fine
// but breaks the streak; without one the member pays the current fine level
// (halved once if a shield is held, consuming it) and the level doubles,
// capped at MaxFine.
func SettleUser(ledger LedgerState, sessions int, recoverySessions int, hasAcceptedExcuse bool) SettlementOutcome {
	totalRequired := WeeklyGoal + recoverySessions
	deficit := totalRequired - sessions

	summary := models.WeeklySummary{
		Status:           models.SummaryCompleted,
		Sessions:         sessions,
		TotalRequired:    totalRequired,
		RecoverySessions: recoverySessions,
	}
	if deficit > 0 {
		summary.Deficit = deficit
	}

	switch {
	case deficit <= 0:
		applySuccess(&ledger, &summary)
		if sessions-recoverySessions >= ExtraLifeThreshold {
			summary.LifeEarned = true
			ledger.ExtraLives++
		}

	case deficit == 1 && ledger.ExtraLives > 0:
		summary.LifeUsed = true
		ledger.ExtraLives--
		applySuccess(&ledger, &summary)

	case hasAcceptedExcuse:
		// Fine frozen: no charge, no escalation, but the streak is gone.
		summary.Status = models.SummaryJustified
		ledger.ConsecutiveSuccesses = 0

	default:
		summary.Status = models.SummaryMissed
		fine := ledger.CurrentFineLevel
		if ledger.HasShield {
			fine /= 2
			ledger.HasShield = false
			summary.ShieldBroken = true
		}
		summary.FineApplied = fine
		ledger.ConsecutiveMisses++
		ledger.ConsecutiveSuccesses = 0
		ledger.CurrentFineLevel = min(MaxFine, ledger.CurrentFineLevel*2)
	}

	return SettlementOutcome{Ledger: ledger, Summary: summary}
}

func applySuccess(ledger *LedgerState, summary *models.WeeklySummary) {
	ledger.CurrentFineLevel = max(BaseFine, ledger.CurrentFineLevel/2)
	ledger.ConsecutiveMisses = 0
	ledger.ConsecutiveSuccesses++
	if ledger.ConsecutiveSuccesses >= ShieldStreak && !ledger.HasShield {
		ledger.HasShield = true
		summary.ShieldEarned = true
	}
}

func frozenSummary(userID string, weekID string) models.WeeklySummary {
	return models.WeeklySummary{
		UserID:   userID,
		WeekID:   weekID,
		Status:   models.SummaryFrozen,
		Sessions: 0,
	}
}

func weekFrozen(absences []models.Absence, weekID string) bool {
	for _, absence := range absences {
		if absence.FrozenWeekID == weekID {
			return true
		}
	}
	return false
}

func recoverySessionsOwed(absences []models.Absence, weekID string) int {
	owed := 0
	for _, absence := range absences {
		owed += absence.MissedSessionsPerRecoveryWeek[weekID]
	}
	return owed
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint")
}
