package overtime

import "math"

// The two rule kinds are deliberately separate types with separate
// contracts; a weekly rule has no meaningful per-day classification and
// a daily rule has no weekly one, so there is no shared interface.

// WeeklyRule classifies a week's total hours against a regular-hours
// threshold. DoubleTimeBand caps the overtime band; zero means all
// hours beyond the threshold are overtime.
type WeeklyRule struct {
	Threshold      float64 `json:"threshold"`
	DoubleTimeBand float64 `json:"doubleTimeThreshold"`
}

func (r WeeklyRule) ClassifyWeek(totalHours float64) (regular, overtime, doubletime float64) {
	regular = math.Min(totalHours, r.Threshold)
	remaining := totalHours - regular
	if remaining > 0 {
		band := r.DoubleTimeBand
		if band <= 0 {
			band = remaining
		}
		overtime = math.Min(remaining, band)
		remaining -= overtime
	}
	if remaining > 0 {
		doubletime = remaining
	}
	return regular, overtime, doubletime
}

// DailyRule classifies one day's hours under a jurisdiction's daily
// thresholds (e.g. CA: overtime past 8, double time past 12).
type DailyRule struct {
	State               string  `json:"state"`
	DailyThreshold      float64 `json:"dailyThreshold"`
	DoubleTimeThreshold float64 `json:"doubleTimeThreshold"`
}

func (r DailyRule) ClassifyDay(hours float64) Bucket {
	regular := math.Min(hours, r.DailyThreshold)
	remaining := hours - regular
	var ot, dt float64
	if remaining > 0 {
		band := math.Max(r.DoubleTimeThreshold-r.DailyThreshold, 0)
		ot = math.Min(remaining, band)
		remaining -= ot
	}
	if remaining > 0 {
		dt = remaining
	}
	return Bucket{RegularHours: regular, OvertimeHours: ot, DoubletimeHours: dt}
}
