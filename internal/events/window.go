// Package events computes the print-run calendar for the banner program.
// Banners go to the printers ahead of Memorial Day and Veterans Day, so the
// review emails phrase approvals against whichever event is coming up next.
package events

import (
	"time"
)

// Phrases used in applicant-facing messages.
const (
	PhraseMemorialDay = "ahead of Memorial Day"
	PhraseVeteransDay = "ahead of Veterans Day"
)

// DefaultCutoffDays is how close to an event a submission can be approved and
// still make that print run.
const DefaultCutoffDays = 21

// windowDays is the look-ahead used by WindowPhrase for "just in time" notices.
const windowDays = 14

// eastern is the US Eastern civil calendar all dates are interpreted in.
var eastern = mustLoadEastern()

func mustLoadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic("events: load America/New_York: " + err.Error())
	}
	return loc
}

// MemorialDay returns the last Monday of May for the given year, at midnight
// Eastern.
func MemorialDay(year int) time.Time {
	d := time.Date(year, time.May, 31, 0, 0, 0, 0, eastern)
	offset := (int(d.Weekday()) + 6) % 7 // days since Monday
	return d.AddDate(0, 0, -offset)
}

// VeteransDay returns November 11 of the given year, at midnight Eastern.
func VeteransDay(year int) time.Time {
	return time.Date(year, time.November, 11, 0, 0, 0, 0, eastern)
}

// DaysUntil returns the whole-day difference between the Eastern calendar
// dates of now and target. The subtraction happens on civil dates re-anchored
// in UTC so a DST transition between the two instants cannot skew the count.
func DaysUntil(now, target time.Time) int {
	return int(civilUTC(target).Sub(civilUTC(now)).Hours() / 24)
}

// civilUTC maps an instant to its Eastern calendar date at midnight UTC.
func civilUTC(t time.Time) time.Time {
	y, m, d := t.In(eastern).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysToNext returns the days until this year's occurrence if it hasn't
// passed, otherwise next year's.
func daysToNext(now time.Time, eventForYear func(int) time.Time) int {
	year := now.In(eastern).Year()
	if d := DaysUntil(now, eventForYear(year)); d >= 0 {
		return d
	}
	return DaysUntil(now, eventForYear(year + 1))
}

// NextEventPhrase names the chronologically nearer upcoming event.
// Ties favor Memorial Day.
func NextEventPhrase(now time.Time) string {
	if daysToNext(now, MemorialDay) <= daysToNext(now, VeteransDay) {
		return PhraseMemorialDay
	}
	return PhraseVeteransDay
}

// SuggestedEventPhrase names the event an approved banner will realistically
// print for. When the nearest event is within cutoffDays (inclusive) the
// print deadline for it has effectively passed, so the following event is
// suggested instead.
func SuggestedEventPhrase(now time.Time, cutoffDays int) string {
	dMd := daysToNext(now, MemorialDay)
	dVd := daysToNext(now, VeteransDay)

	memorialNext := dMd <= dVd
	if memorialNext && dMd <= cutoffDays {
		return PhraseVeteransDay
	}
	if !memorialNext && dVd <= cutoffDays {
		return PhraseMemorialDay
	}
	if memorialNext {
		return PhraseMemorialDay
	}
	return PhraseVeteransDay
}

// WindowPhrase reports whether some event falls within the 14-day look-ahead
// window, for "you're just in time" notices. The second return is false when
// neither event is close.
func WindowPhrase(now time.Time) (string, bool) {
	if d := daysToNext(now, MemorialDay); d >= 0 && d <= windowDays {
		return PhraseMemorialDay, true
	}
	if d := daysToNext(now, VeteransDay); d >= 0 && d <= windowDays {
		return PhraseVeteransDay, true
	}
	return "", false
}
