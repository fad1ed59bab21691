package overtimehandler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"paycalc/internal/domain/overtime"
	"paycalc/internal/transport/http/api"
	"paycalc/internal/transport/http/middleware"
)

const dateLayout = "2006-01-02"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/overtime/classify", h.handleClassify)
}

type timeEntryPayload struct {
	EmployeeID string  `json:"employeeId"`
	WorkedDate string  `json:"workedDate"`
	Hours      float64 `json:"hours"`
}

type classifyPayload struct {
	EmployeeID string              `json:"employeeId"`
	AnchorDate string              `json:"anchorDate"`
	WeeklyRule overtime.WeeklyRule `json:"weeklyRule"`
	DailyRule  *overtime.DailyRule `json:"dailyRule,omitempty"`
	Entries    []timeEntryPayload  `json:"entries"`
}

type dayResponse struct {
	WorkedDate string          `json:"workedDate"`
	TotalHours float64         `json:"totalHours"`
	Bucket     overtime.Bucket `json:"bucket"`
}

type classifyResponse struct {
	EmployeeID      string        `json:"employeeId"`
	WeekStart       string        `json:"weekStart"`
	WeekEnd         string        `json:"weekEnd"`
	Days            []dayResponse `json:"days"`
	RegularHours    float64       `json:"regularHours"`
	OvertimeHours   float64       `json:"overtimeHours"`
	DoubletimeHours float64       `json:"doubletimeHours"`
}

func (h *Handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload classifyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", reqID)
		return
	}

	if err := validateClassify(payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		return
	}

	anchor, err := time.Parse(dateLayout, payload.AnchorDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "anchorDate must be YYYY-MM-DD", reqID)
		return
	}

	entries := make([]overtime.TimeEntry, 0, len(payload.Entries))
	for i, entry := range payload.Entries {
		workedDate, err := time.Parse(dateLayout, entry.WorkedDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_request",
				fmt.Sprintf("entries[%d].workedDate must be YYYY-MM-DD", i), reqID)
			return
		}
		entries = append(entries, overtime.TimeEntry{
			EmployeeID: entry.EmployeeID,
			WorkedDate: workedDate,
			Hours:      entry.Hours,
		})
	}

	engine := overtime.Engine{Weekly: payload.WeeklyRule, Daily: payload.DailyRule}
	start, end := overtime.WeekBounds(anchor)
	result := engine.ClassifyWeek(payload.EmployeeID, start, end, entries)

	api.Success(w, toResponse(result), reqID)
}

func validateClassify(payload classifyPayload) error {
	if payload.EmployeeID == "" {
		return fmt.Errorf("employeeId is required")
	}
	if payload.WeeklyRule.Threshold <= 0 {
		return fmt.Errorf("weeklyRule.threshold must be positive")
	}
	if payload.DailyRule != nil && payload.DailyRule.DailyThreshold <= 0 {
		return fmt.Errorf("dailyRule.dailyThreshold must be positive")
	}
	for i, entry := range payload.Entries {
		if entry.Hours < 0 {
			return fmt.Errorf("entries[%d].hours must not be negative", i)
		}
	}
	return nil
}

func toResponse(result overtime.WeeklyResult) classifyResponse {
	days := make([]dayResponse, 0, len(result.Days))
	for _, day := range result.Days {
		days = append(days, dayResponse{
			WorkedDate: day.WorkedDate.Format(dateLayout),
			TotalHours: day.TotalHours,
			Bucket:     day.Bucket,
		})
	}
	return classifyResponse{
		EmployeeID:      result.EmployeeID,
		WeekStart:       result.WeekStart.Format(dateLayout),
		WeekEnd:         result.WeekEnd.Format(dateLayout),
		Days:            days,
		RegularHours:    result.RegularHours,
		OvertimeHours:   result.OvertimeHours,
		DoubletimeHours: result.DoubletimeHours,
	}
}
