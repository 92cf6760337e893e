package services

import (
	"errors"
	"fmt"

	"github.com/vergaracl/fitfam/internal/db"
	"github.com/vergaracl/fitfam/internal/models"
	"gorm.io/gorm"
)

var (
	ErrFlagOwnWorkout     = errors.New("cannot flag your own workout")
	ErrVoteOwnWorkout     = errors.New("cannot vote on your own workout")
	ErrWorkoutNotFound    = errors.New("workout not found")
	ErrFlagNotFound       = errors.New("workout is not flagged")
	ErrFlagAlreadyExists  = errors.New("workout already flagged")
	ErrFlagResolved       = errors.New("flag already resolved")
	ErrInvalidVote        = errors.New("invalid vote choice")
	ErrFlagOperationError = errors.New("flag operation failed")
)

// FlagService handles peer disputes over workout photos. Flagging records
// the flagger's implicit "fake" vote; once three distinct members have
// voted, the majority decides, with ties removing the workout. All vote and
// resolution writes run inside one transaction so two racing final votes
// cannot both resolve.
type FlagService struct {
	database *gorm.DB
}

func NewFlagService(database *gorm.DB) *FlagService {
	return &FlagService{database: database}
}

func (service *FlagService) FlagWorkout(workoutID uint, flaggerID string) (models.WorkoutFlag, error) {
	flag := models.WorkoutFlag{}
	err := service.database.Transaction(func(tx *gorm.DB) error {
		repos := db.NewRepositories(tx)

		workout, found, err := repos.Workouts.FindByID(workoutID)
		if err != nil {
			return err
		}
		if !found {
			return ErrWorkoutNotFound
		}
		if workout.UserID == flaggerID {
			return ErrFlagOwnWorkout
		}

		if _, exists, err := repos.Flags.FindByWorkout(workoutID); err != nil {
			return err
		} else if exists {
			return ErrFlagAlreadyExists
		}

		flag = models.WorkoutFlag{
			WorkoutID: workoutID,
			FlaggerID: flaggerID,
			OwnerID:   workout.UserID,
			Votes:     map[string]string{flaggerID: models.VoteFake},
		}
		return repos.Flags.Create(&flag)
	})
	if err != nil {
		return models.WorkoutFlag{}, wrapFlagError(err)
	}
	return flag, nil
}

// Vote records or overwrites one member's vote and resolves the flag once
// the quorum of three distinct voters is reached.
func (service *FlagService) Vote(workoutID uint, voterID string, choice string) (models.WorkoutFlag, error) {
	if choice != models.VoteLegitimate && choice != models.VoteFake {
		return models.WorkoutFlag{}, fmt.Errorf("%w: %q", ErrInvalidVote, choice)
	}

	flag := models.WorkoutFlag{}
	err := service.database.Transaction(func(tx *gorm.DB) error {
		repos := db.NewRepositories(tx)

		found := false
		var err error
		flag, found, err = repos.Flags.FindByWorkout(workoutID)
		if err != nil {
			return err
		}
		if !found {
			return ErrFlagNotFound
		}
		if flag.Resolved() {
			return ErrFlagResolved
		}
		if flag.OwnerID == voterID {
			return ErrVoteOwnWorkout
		}

		if flag.Votes == nil {
			flag.Votes = map[string]string{}
		}
		flag.Votes[voterID] = choice

		if len(flag.Votes) >= VoteQuorum {
			return resolveFlag(tx, &flag)
		}
		return tx.Save(&flag).Error
	})
	if err != nil {
		return models.WorkoutFlag{}, wrapFlagError(err)
	}
	return flag, nil
}

// resolveFlag counts the votes and either deletes the workout (fake wins or
// ties) or clears the flag.
func resolveFlag(tx *gorm.DB, flag *models.WorkoutFlag) error {
	fakeVotes := 0
	legitimateVotes := 0
	for _, choice := range flag.Votes {
		if choice == models.VoteFake {
			fakeVotes++
		} else {
			legitimateVotes++
		}
	}

	if fakeVotes >= legitimateVotes {
		flag.Resolution = models.FlagResolvedFake
		if err := db.NewWorkoutRepository(tx).DeleteByID(flag.WorkoutID); err != nil {
			return err
		}
	} else {
		flag.Resolution = models.FlagResolvedLegitimate
	}
	return tx.Save(flag).Error
}

func (service *FlagService) OpenFlags() ([]models.WorkoutFlag, error) {
	flags, err := db.NewFlagRepository(service.database).ListOpen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFlagOperationError, err)
	}
	return flags, nil
}

func wrapFlagError(err error) error {
	switch {
	case errors.Is(err, ErrWorkoutNotFound),
		errors.Is(err, ErrFlagNotFound),
		errors.Is(err, ErrFlagAlreadyExists),
		errors.Is(err, ErrFlagResolved),
		errors.Is(err, ErrFlagOwnWorkout),
		errors.Is(err, ErrVoteOwnWorkout):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrFlagOperationError, err)
	}
}
