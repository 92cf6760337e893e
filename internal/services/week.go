package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Week identifiers look like "2025-W07": Monday-anchored, 1-based, counted
// from the Monday on or before January 1st of the week-start's year. This is
// deliberately not strict ISO-8601 (no "week containing Jan 4th" rule); the
// scheme only has to be self-consistent, since week ids never leave the app.

var weekIDPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

type WeekRange struct {
	Start time.Time
	End   time.Time
}

// MondayOf returns midnight of the Monday on or before the given time, in
// the time's own location.
func MondayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

func firstMondayAnchor(year int, location *time.Location) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, location)
	jan1Day := int(jan1.Weekday())
	if jan1Day == 0 {
		jan1Day = 7
	}
	return jan1.AddDate(0, 0, 1-jan1Day)
}

// WeekIDFor maps a calendar date to its week identifier.
func WeekIDFor(date time.Time) string {
	weekStart := MondayOf(date)
	anchor := firstMondayAnchor(weekStart.Year(), date.Location())
	weekNum := daysBetween(anchor, weekStart)/7 + 1
	return fmt.Sprintf("%d-W%02d", weekStart.Year(), weekNum)
}

// WeekRangeFor is the inverse of WeekIDFor: Monday midnight through the last
// second of Sunday. Returns false for malformed identifiers.
func WeekRangeFor(weekID string, location *time.Location) (WeekRange, bool) {
	matches := weekIDPattern.FindStringSubmatch(weekID)
	if matches == nil {
		return WeekRange{}, false
	}
	year, _ := strconv.Atoi(matches[1])
	week, _ := strconv.Atoi(matches[2])
	if week < 1 || week > 54 {
		return WeekRange{}, false
	}

	start := firstMondayAnchor(year, location).AddDate(0, 0, (week-1)*7)
	// Only canonical labels name a week. "2025-W01" is well-formed but the
	// forward mapping never emits it (2025 starts at W02), so an absence or
	// close filed under it could never line up with settlement.
	if WeekIDFor(start) != weekID {
		return WeekRange{}, false
	}
	end := start.AddDate(0, 0, 7).Add(-time.Second)
	return WeekRange{Start: start, End: end}, true
}

// PreviousWeekID walks one week back through range arithmetic, so year
// rollover and variable week counts per year come out right.
func PreviousWeekID(weekID string, location *time.Location) (string, bool) {
	weekRange, ok := WeekRangeFor(weekID, location)
	if !ok {
		return "", false
	}
	return WeekIDFor(weekRange.Start.AddDate(0, 0, -7)), true
}

// AdjacentWeekIDs returns the ids of the weeks surrounding weekID, oldest
// first, excluding weekID itself.
func AdjacentWeekIDs(weekID string, before int, after int, location *time.Location) ([]string, bool) {
	weekRange, ok := WeekRangeFor(weekID, location)
	if !ok {
		return nil, false
	}

	weeks := make([]string, 0, before+after)
	for i := -before; i <= after; i++ {
		if i == 0 {
			continue
		}
		weeks = append(weeks, WeekIDFor(weekRange.Start.AddDate(0, 0, i*7)))
	}
	return weeks, true
}

// IsDateInWeek reports whether the date falls inside the week's Monday
// through Sunday span.
func IsDateInWeek(date time.Time, weekID string) bool {
	weekRange, ok := WeekRangeFor(weekID, date.Location())
	if !ok {
		return false
	}
	return !date.Before(weekRange.Start) && date.Before(weekRange.Start.AddDate(0, 0, 7))
}

func IsValidWeekID(weekID string) bool {
	_, ok := WeekRangeFor(weekID, time.UTC)
	return ok
}

// daysBetween rounds so that a DST-shortened or -lengthened day still counts
// as one day.
func daysBetween(from time.Time, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
