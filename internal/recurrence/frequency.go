// Package recurrence holds the schedule arithmetic shared by chores and habits.
// Due dates are computed when an item is completed; nothing here runs on a timer.
package recurrence

import (
	"fmt"

	util "github.com/saulo-duarte/chronos-planner/internal/utils"
)

type FrequencyType string

const (
	Daily    FrequencyType = "daily"
	Weekly   FrequencyType = "weekly"
	Biweekly FrequencyType = "biweekly"
	Monthly  FrequencyType = "monthly"
	// Custom repeats every FrequencyValue days.
	Custom FrequencyType = "custom"
)

var AllFrequencies = []FrequencyType{Daily, Weekly, Biweekly, Monthly, Custom}

func (f FrequencyType) IsValid() bool {
	for _, v := range AllFrequencies {
		if f == v {
			return true
		}
	}
	return false
}

// intervalDays is the gap between two occurrences. Monthly is a flat 30 days,
// not a calendar month.
func intervalDays(f FrequencyType, value int) (int, error) {
	switch f {
	case Daily:
		return 1, nil
	case Weekly:
		return 7, nil
	case Biweekly:
		return 14, nil
	case Monthly:
		return 30, nil
	case Custom:
		if value <= 0 {
			return 0, fmt.Errorf("custom frequency needs a positive value, got %d", value)
		}
		return value, nil
	default:
		return 0, fmt.Errorf("unknown frequency type: %q", f)
	}
}

// NextDueDate returns the due date following from.
func NextDueDate(f FrequencyType, value int, from util.LocalDate) (util.LocalDate, error) {
	days, err := intervalDays(f, value)
	if err != nil {
		return util.LocalDate{}, err
	}
	return from.AddDays(days), nil
}

// NextStreak returns the streak after a completion on completed, given the
// current streak and the previous completion date (nil if never completed).
func NextStreak(f FrequencyType, value int, streak int, last *util.LocalDate, completed util.LocalDate) (int, error) {
	if last == nil {
		return 1, nil
	}

	if f == Daily {
		if completed.DaysSince(*last) <= 1 {
			return streak + 1, nil
		}
		return 1, nil
	}

	expected, err := NextDueDate(f, value, *last)
	if err != nil {
		return 0, err
	}
	if !completed.After(expected) {
		return streak + 1, nil
	}
	return 1, nil
}
