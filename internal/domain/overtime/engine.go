package overtime

import (
	"sort"
	"time"
)

// Engine combines a weekly threshold rule with an optional
// jurisdiction daily rule and reconciles their outputs into per-day
// buckets.
type Engine struct {
	Weekly WeeklyRule
	Daily  *DailyRule
}

// WeekBounds returns the Monday-start week containing anchor.
func WeekBounds(anchor time.Time) (start, end time.Time) {
	anchor = midnight(anchor)
	offset := (int(anchor.Weekday()) + 6) % 7
	start = anchor.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClassifyWeek groups the entries by calendar day inside [start, end],
// classifies each day, then reconciles against the weekly rule in two
// passes: first the weekly regular cap re-labels excess daily regular
// hours as overtime walking days in date order, then any weekly
// overtime the daily pass did not produce is distributed evenly across
// the days. The distribution step is a sum-and-redistribute heuristic,
// not the greater-of-daily-or-weekly computation wage law usually
// wants; see DESIGN.md before changing it.
func (e Engine) ClassifyWeek(employeeID string, start, end time.Time, entries []TimeEntry) WeeklyResult {
	start, end = midnight(start), midnight(end)

	hoursByDay := make(map[time.Time]float64)
	for _, entry := range entries {
		day := midnight(entry.WorkedDate)
		if entry.EmployeeID != employeeID || day.Before(start) || day.After(end) {
			continue
		}
		hoursByDay[day] += entry.Hours
	}

	days := make([]time.Time, 0, len(hoursByDay))
	for day := range hoursByDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var totalHours float64
	classified := make([]DayClassification, 0, len(days))
	for _, day := range days {
		hours := hoursByDay[day]
		totalHours += hours
		bucket := Bucket{RegularHours: hours}
		if e.Daily != nil {
			bucket = e.Daily.ClassifyDay(hours)
		}
		classified = append(classified, DayClassification{WorkedDate: day, TotalHours: hours, Bucket: bucket})
	}

	regularTarget, otTarget, dtTarget := e.Weekly.ClassifyWeek(totalHours)

	// Pass 1: cap regular hours at the weekly target, re-labeling the
	// excess as overtime day by day. Day totals are preserved.
	allocatedRegular := 0.0
	for i, day := range classified {
		bucket := day.Bucket
		if allocatedRegular+bucket.RegularHours > regularTarget {
			over := allocatedRegular + bucket.RegularHours - regularTarget
			bucket = Bucket{
				RegularHours:    bucket.RegularHours - over,
				OvertimeHours:   bucket.OvertimeHours + over,
				DoubletimeHours: bucket.DoubletimeHours,
			}
			allocatedRegular = regularTarget
		} else {
			allocatedRegular += bucket.RegularHours
		}
		classified[i].Bucket = bucket
	}

	result := WeeklyResult{
		EmployeeID: employeeID,
		WeekStart:  start,
		WeekEnd:    end,
		Days:       classified,
	}
	for _, day := range classified {
		result.RegularHours += day.Bucket.RegularHours
		result.OvertimeHours += day.Bucket.OvertimeHours
		result.DoubletimeHours += day.Bucket.DoubletimeHours
	}

	// Pass 2: whatever weekly overtime the daily classification did not
	// account for is spread evenly across the week.
	extra := (otTarget + dtTarget) - (result.OvertimeHours + result.DoubletimeHours)
	if extra > 0 && len(result.Days) > 0 {
		perDay := extra / float64(len(result.Days))
		for i, day := range result.Days {
			result.Days[i].Bucket = Bucket{
				RegularHours:    day.Bucket.RegularHours,
				OvertimeHours:   day.Bucket.OvertimeHours + perDay,
				DoubletimeHours: day.Bucket.DoubletimeHours,
			}
		}
		result.OvertimeHours += extra
	}

	return result
}
