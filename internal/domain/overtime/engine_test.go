package overtime

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekBoundsMondayStart(t *testing.T) {
	cases := []struct {
		name      string
		anchor    time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"midweek anchor", day(2024, time.January, 10), day(2024, time.January, 8), day(2024, time.January, 14)},
		{"monday anchor", day(2024, time.January, 8), day(2024, time.January, 8), day(2024, time.January, 14)},
		{"sunday anchor", day(2024, time.January, 14), day(2024, time.January, 8), day(2024, time.January, 14)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := WeekBounds(tc.anchor)
			if !start.Equal(tc.wantStart) || !end.Equal(tc.wantEnd) {
				t.Fatalf("WeekBounds(%v) = (%v, %v), want (%v, %v)",
					tc.anchor, start, end, tc.wantStart, tc.wantEnd)
			}
		})
	}
}

func weekEntries(employeeID string, hoursByDay map[int]float64) []TimeEntry {
	var entries []TimeEntry
	for dayOfMonth, hours := range hoursByDay {
		entries = append(entries, TimeEntry{
			EmployeeID: employeeID,
			WorkedDate: day(2024, time.January, dayOfMonth),
			Hours:      hours,
		})
	}
	return entries
}

func TestWeeklyCapRelabelsRegularAsOvertime(t *testing.T) {
	engine := Engine{Weekly: WeeklyRule{Threshold: 40}}
	start, end := day(2024, time.January, 8), day(2024, time.January, 14)
	// Mon-Fri, 9h each: no daily rule, so days classify as all regular,
	// and the weekly pass must convert the 5 hours past 40.
	entries := weekEntries("emp1", map[int]float64{8: 9, 9: 9, 10: 9, 11: 9, 12: 9})

	result := engine.ClassifyWeek("emp1", start, end, entries)

	if len(result.Days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(result.Days))
	}
	if result.RegularHours != 40 || result.OvertimeHours != 5 || result.DoubletimeHours != 0 {
		t.Fatalf("expected totals 40/5/0, got %v/%v/%v",
			result.RegularHours, result.OvertimeHours, result.DoubletimeHours)
	}

	// The cap hits on Friday: 36 allocated, only 4 more regular fit.
	friday := result.Days[4]
	if friday.Bucket.RegularHours != 4 || friday.Bucket.OvertimeHours != 5 {
		t.Fatalf("expected friday 4 regular / 5 overtime, got %+v", friday.Bucket)
	}

	var bucketSum, hourSum float64
	for _, dayResult := range result.Days {
		bucketSum += dayResult.Bucket.Total()
		hourSum += dayResult.TotalHours
	}
	if bucketSum != hourSum {
		t.Fatalf("bucket sum %v must equal worked hours %v", bucketSum, hourSum)
	}
}

func TestDailyRuleClassificationSurvivesWeeklyPass(t *testing.T) {
	daily := DailyRule{State: "CA", DailyThreshold: 8, DoubleTimeThreshold: 12}
	engine := Engine{Weekly: WeeklyRule{Threshold: 40}, Daily: &daily}
	start, end := day(2024, time.January, 8), day(2024, time.January, 14)
	// Four 10-hour days: daily rule yields 8/2 each; the 32 regular
	// hours stay under the weekly cap.
	entries := weekEntries("emp1", map[int]float64{8: 10, 9: 10, 10: 10, 11: 10})

	result := engine.ClassifyWeek("emp1", start, end, entries)

	if result.RegularHours != 32 || result.OvertimeHours != 8 || result.DoubletimeHours != 0 {
		t.Fatalf("expected totals 32/8/0, got %v/%v/%v",
			result.RegularHours, result.OvertimeHours, result.DoubletimeHours)
	}
	for _, dayResult := range result.Days {
		if dayResult.Bucket != (Bucket{RegularHours: 8, OvertimeHours: 2}) {
			t.Fatalf("expected each day 8/2/0, got %+v", dayResult.Bucket)
		}
	}
}

func TestDoubleTimeDayWithWeeklyCap(t *testing.T) {
	daily := DailyRule{State: "CA", DailyThreshold: 8, DoubleTimeThreshold: 12}
	engine := Engine{Weekly: WeeklyRule{Threshold: 40}, Daily: &daily}
	start, end := day(2024, time.January, 8), day(2024, time.January, 14)
	// Mon-Thu 9h, Fri 14h: Friday alone is 8/4/2 daily, and the week's
	// regular hours land exactly on the 40-hour cap.
	entries := weekEntries("emp1", map[int]float64{8: 9, 9: 9, 10: 9, 11: 9, 12: 14})

	result := engine.ClassifyWeek("emp1", start, end, entries)

	totalWorked := 9.0*4 + 14
	var bucketSum float64
	for _, dayResult := range result.Days {
		bucketSum += dayResult.Bucket.Total()
	}
	if bucketSum != totalWorked {
		t.Fatalf("bucket sum %v must equal worked hours %v", bucketSum, totalWorked)
	}
	if result.RegularHours > 40 {
		t.Fatalf("regular hours %v must not exceed the weekly threshold", result.RegularHours)
	}
	if result.DoubletimeHours != 2 {
		t.Fatalf("expected 2 double-time hours preserved, got %v", result.DoubletimeHours)
	}
	if got := result.RegularHours + result.OvertimeHours + result.DoubletimeHours; got != totalWorked {
		t.Fatalf("totals %v must equal worked hours %v", got, totalWorked)
	}
}

func TestClassifyWeekFiltersEntries(t *testing.T) {
	engine := Engine{Weekly: WeeklyRule{Threshold: 40}}
	start, end := day(2024, time.January, 8), day(2024, time.January, 14)
	entries := []TimeEntry{
		{EmployeeID: "emp1", WorkedDate: day(2024, time.January, 8), Hours: 8},
		{EmployeeID: "emp1", WorkedDate: day(2024, time.January, 8), Hours: 2}, // same day accumulates
		{EmployeeID: "emp2", WorkedDate: day(2024, time.January, 9), Hours: 8}, // other employee
		{EmployeeID: "emp1", WorkedDate: day(2024, time.January, 15), Hours: 8}, // outside window
	}

	result := engine.ClassifyWeek("emp1", start, end, entries)

	if len(result.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(result.Days))
	}
	if result.Days[0].TotalHours != 10 {
		t.Fatalf("expected 10 hours accumulated on the day, got %v", result.Days[0].TotalHours)
	}
}

func TestClassifyWeekEmpty(t *testing.T) {
	engine := Engine{Weekly: WeeklyRule{Threshold: 40}}
	start, end := day(2024, time.January, 8), day(2024, time.January, 14)

	result := engine.ClassifyWeek("emp1", start, end, nil)

	if len(result.Days) != 0 {
		t.Fatalf("expected no days, got %d", len(result.Days))
	}
	if result.RegularHours != 0 || result.OvertimeHours != 0 || result.DoubletimeHours != 0 {
		t.Fatalf("expected zero totals, got %+v", result)
	}
}
