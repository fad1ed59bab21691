package overtime

import "time"

// TimeEntry is a raw worked-hours record consumed from the time
// tracking layer; the engine never owns or mutates these.
type TimeEntry struct {
	EmployeeID string
	WorkedDate time.Time
	Hours      float64
}

// Bucket splits a span of hours into pay classes. Value type: every
// adjustment during reconciliation builds a new bucket instead of
// mutating one in place.
type Bucket struct {
	RegularHours    float64 `json:"regularHours"`
	OvertimeHours   float64 `json:"overtimeHours"`
	DoubletimeHours float64 `json:"doubletimeHours"`
}

func (b Bucket) Total() float64 {
	return b.RegularHours + b.OvertimeHours + b.DoubletimeHours
}

type DayClassification struct {
	WorkedDate time.Time `json:"workedDate"`
	TotalHours float64   `json:"totalHours"`
	Bucket     Bucket    `json:"bucket"`
}

// WeeklyResult is one employee's classified week. Totals are the sums
// of the day buckets and stay consistent through reconciliation.
type WeeklyResult struct {
	EmployeeID      string              `json:"employeeId"`
	WeekStart       time.Time           `json:"weekStart"`
	WeekEnd         time.Time           `json:"weekEnd"`
	Days            []DayClassification `json:"days"`
	RegularHours    float64             `json:"regularHours"`
	OvertimeHours   float64             `json:"overtimeHours"`
	DoubletimeHours float64             `json:"doubletimeHours"`
}
