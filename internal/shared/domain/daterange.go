package domain

import (
	"errors"
	"time"
)

// DateRange représente une période temporelle semi-ouverte [start, end).
// Value object: immutable, validé à la construction.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange crée un DateRange avec validation des bornes
func NewDateRange(start, end time.Time) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, errors.New("end cannot be before start")
	}
	return DateRange{start: start, end: end}, nil
}

// NewDateRangeFromDays crée un DateRange couvrant les N derniers jours
func NewDateRangeFromDays(days int) (DateRange, error) {
	if days < 0 {
		return DateRange{}, errors.New("days cannot be negative")
	}
	now := time.Now().UTC()
	return DateRange{
		start: now.AddDate(0, 0, -days),
		end:   now,
	}, nil
}

// NewDayRange crée le DateRange couvrant la journée UTC du jour donné:
// [jour 00:00:00 UTC, jour+1 00:00:00 UTC)
func NewDayRange(day time.Time) DateRange {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return DateRange{
		start: start,
		end:   start.AddDate(0, 0, 1),
	}
}

// Start retourne la borne inférieure (incluse)
func (dr DateRange) Start() time.Time {
	return dr.start
}

// End retourne la borne supérieure (exclue)
func (dr DateRange) End() time.Time {
	return dr.end
}
