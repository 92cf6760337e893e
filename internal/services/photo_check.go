package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/vergaracl/fitfam/internal/exif"
)

// PhotoDateResult reports whether a photo's capture date is consistent with
// the claimed workout date. Only Valid=false blocks a submission.
type PhotoDateResult struct {
	Valid     bool   `json:"valid"`
	Message   string `json:"message,omitempty"`
	PhotoDate string `json:"photo_date,omitempty"`
	Source    string `json:"source,omitempty"`
}

const (
	photoDateSourceEXIF     = "exif"
	photoDateSourceModified = "file_modified"
)

// ValidatePhotoDate compares the EXIF capture date against the claimed date.
// fileModified is an optional caller-supplied fallback (zero means none).
// With no date signal at all the check passes with an advisory, since a
// missing timestamp must never block an honest submission. An exact match
// passes silently, one day of difference passes with a timezone note, and
// anything further apart fails.
func ValidatePhotoDate(photo []byte, fileModified time.Time, claimedDate time.Time) PhotoDateResult {
	photoTime, err := exif.CaptureTime(photo)
	source := photoDateSourceEXIF
	if err != nil {
		if !errors.Is(err, exif.ErrNoDate) || fileModified.IsZero() {
			return PhotoDateResult{
				Valid:   true,
				Message: "Could not read a date from the photo. Make sure it is from the right day.",
			}
		}
		photoTime = fileModified
		source = photoDateSourceModified
	}

	photoDay := dateOnly(photoTime)
	claimedDay := dateOnly(claimedDate.In(photoTime.Location()))
	photoDate := photoDay.Format("2006-01-02")

	diffDays := daysBetween(photoDay, claimedDay)
	if diffDays < 0 {
		diffDays = -diffDays
	}

	switch {
	case diffDays == 0:
		return PhotoDateResult{Valid: true, PhotoDate: photoDate, Source: source}
	case diffDays == 1:
		return PhotoDateResult{
			Valid:     true,
			Message:   fmt.Sprintf("The photo is from %s. One day off, could be a timezone artifact.", photoDate),
			PhotoDate: photoDate,
			Source:    source,
		}
	default:
		return PhotoDateResult{
			Valid: false,
			Message: fmt.Sprintf(
				"The photo is from %s but the claimed date is %s. The photo must be from the day of the activity.",
				photoDate,
				claimedDay.Format("2006-01-02"),
			),
			PhotoDate: photoDate,
			Source:    source,
		}
	}
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
