package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"github.com/vergaracl/fitfam/internal/models"
)

var (
	ErrExcuseTooShort          = errors.New("excuse text too short")
	ErrJustificationSaveFailed = errors.New("save justification failed")
	ErrAppealNotAllowed        = errors.New("appeal only allowed after a rejection")
)

type JustificationStore interface {
	FindByUserAndWeek(userID string, weekID string) (models.Justification, bool, error)
	ListByWeek(weekID string) ([]models.Justification, error)
	Create(justification *models.Justification) error
	Save(justification *models.Justification) error
}

// JustificationService submits excuses to the judge and keeps exactly one
// justification record per (user, week). A rejected excuse can be appealed
// any number of times; each appeal re-runs the judge and edits the same
// record in place.
type JustificationService struct {
	justifications JustificationStore
	judge          ExcuseJudge
}

type ExcuseSubmission struct {
	UserID       string
	WeekID       string
	ExcuseText   string
	PhotoURL     string
	Evidence     []byte
	EvidenceMIME string
}

func NewJustificationService(justifications JustificationStore, judge ExcuseJudge) *JustificationService {
	return &JustificationService{
		justifications: justifications,
		judge:          judge,
	}
}

// Submit validates the excuse, asks the judge, and persists the outcome. A
// judge failure is a rejection with a system reason, never an approval. If a
// justification for the week already exists it must have been rejected; the
// resubmission then counts as an appeal.
func (service *JustificationService) Submit(ctx context.Context, submission ExcuseSubmission) (models.Justification, error) {
	if err := CheckExcuseText(submission.ExcuseText); err != nil {
		return models.Justification{}, err
	}

	existing, exists, err := service.justifications.FindByUserAndWeek(submission.UserID, submission.WeekID)
	if err != nil {
		return models.Justification{}, fmt.Errorf("%w: %v", ErrJustificationSaveFailed, err)
	}
	if exists && existing.AIVerdict {
		return models.Justification{}, ErrAppealNotAllowed
	}

	verdict, err := service.judge.Evaluate(ctx, submission.ExcuseText, submission.Evidence, submission.EvidenceMIME)
	if err != nil {
		// Fail closed: a broken judge never approves anything.
		log.Printf("excuse judge error for %s/%s: %v", submission.UserID, submission.WeekID, err)
		verdict = Verdict{
			Valid:  false,
			Reason: "The excuse could not be evaluated. Try again later.",
		}
	}

	if exists {
		existing.ExcuseText = submission.ExcuseText
		existing.AIVerdict = verdict.Valid
		existing.AIReason = verdict.Reason
		existing.AppealCount++
		if submission.PhotoURL != "" {
			existing.PhotoURL = submission.PhotoURL
		}
		if err := service.justifications.Save(&existing); err != nil {
			return models.Justification{}, fmt.Errorf("%w: %v", ErrJustificationSaveFailed, err)
		}
		return existing, nil
	}

	justification := models.Justification{
		UserID:     submission.UserID,
		WeekID:     submission.WeekID,
		ExcuseText: submission.ExcuseText,
		PhotoURL:   submission.PhotoURL,
		AIVerdict:  verdict.Valid,
		AIReason:   verdict.Reason,
	}
	if err := service.justifications.Create(&justification); err != nil {
		return models.Justification{}, fmt.Errorf("%w: %v", ErrJustificationSaveFailed, err)
	}
	return justification, nil
}

func (service *JustificationService) ListForWeek(weekID string) ([]models.Justification, error) {
	justifications, err := service.justifications.ListByWeek(weekID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJustificationSaveFailed, err)
	}
	return justifications, nil
}

// CheckExcuseText rejects excuses with fewer than MinExcuseLength non-space
// characters. Callers that stage side effects (evidence uploads) run it
// before Submit so a rejected excuse leaves nothing behind.
func CheckExcuseText(text string) error {
	if countMeaningfulRunes(text) < MinExcuseLength {
		return fmt.Errorf("%w: need at least %d characters", ErrExcuseTooShort, MinExcuseLength)
	}
	return nil
}

func countMeaningfulRunes(text string) int {
	count := 0
	for _, r := range strings.TrimSpace(text) {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}
