package dto

import (
	"fmt"
	"time"

	model "competition_backend/internals/features/attendance/model"
)

/* ===================== REQUESTS ===================== */

// SyncParams is bound from the path and query of the sync endpoint.
type SyncParams struct {
	EventID int  `params:"event_id" validate:"required,gt=0"`
	DryRun  bool `query:"dry_run"`
}

/* ===================== RESPONSES ===================== */

// SyncResult reports what one sync invocation did per level.
type SyncResult struct {
	EventID            int      `json:"eventId"`
	DryRun             bool     `json:"dryRun"`
	NewContingents     int      `json:"newContingents"`
	UpdatedContingents int      `json:"updatedContingents"`
	NewTeams           int      `json:"newTeams"`
	UpdatedTeams       int      `json:"updatedTeams"`
	NewContestants     int      `json:"newContestants"`
	UpdatedContestants int      `json:"updatedContestants"`
	NewManagers        int      `json:"newManagers"`
	UpdatedManagers    int      `json:"updatedManagers"`
	SkippedTeams       int      `json:"skippedTeams"`
	ErrorCount         int      `json:"errorCount"`
	Errors             []string `json:"errors"`
}

func NewSyncResult(eventID int, dryRun bool) *SyncResult {
	return &SyncResult{EventID: eventID, DryRun: dryRun, Errors: []string{}}
}

// AddError records a per-entity failure and keeps ErrorCount in step.
func (r *SyncResult) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.ErrorCount = len(r.Errors)
}

// Total returns the number of rows written or touched.
func (r *SyncResult) Total() int {
	return r.NewContingents + r.UpdatedContingents +
		r.NewTeams + r.UpdatedTeams +
		r.NewContestants + r.UpdatedContestants +
		r.NewManagers + r.UpdatedManagers
}

// Message is the human summary returned by the endpoint.
func (r *SyncResult) Message() string {
	prefix := "Attendance sync completed"
	if r.DryRun {
		prefix = "Attendance sync dry run completed"
	}
	return fmt.Sprintf(
		"%s: %d contingents, %d teams, %d contestants, %d managers (%d errors)",
		prefix,
		r.NewContingents+r.UpdatedContingents,
		r.NewTeams+r.UpdatedTeams,
		r.NewContestants+r.UpdatedContestants,
		r.NewManagers+r.UpdatedManagers,
		r.ErrorCount,
	)
}

type SyncRunResponse struct {
	ID          int       `json:"id"`
	EventID     int       `json:"event_id"`
	Trigger     string    `json:"trigger"`
	TriggeredBy string    `json:"triggered_by,omitempty"`
	Status      string    `json:"status"`
	ErrorCount  int       `json:"error_count"`
	Result      any       `json:"result,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	DurationMs  int64     `json:"duration_ms"`
}

func FromSyncRunModel(m model.AttendanceSyncRunModel) SyncRunResponse {
	out := SyncRunResponse{
		ID:          m.ID,
		EventID:     m.EventID,
		Trigger:     m.Trigger,
		TriggeredBy: m.TriggeredBy,
		Status:      m.Status,
		ErrorCount:  m.ErrorCount,
		StartedAt:   m.StartedAt,
		FinishedAt:  m.FinishedAt,
		DurationMs:  m.FinishedAt.Sub(m.StartedAt).Milliseconds(),
	}
	if len(m.Result) > 0 {
		out.Result = m.Result
	}
	return out
}

func FromSyncRunModels(rows []model.AttendanceSyncRunModel) []SyncRunResponse {
	out := make([]SyncRunResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromSyncRunModel(rows[i]))
	}
	return out
}
