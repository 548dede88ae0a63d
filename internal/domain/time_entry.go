package domain

import (
	"fmt"
	"strings"
	"time"

	"worklog/internal/duration"
)

// UnassignedProjectKey is the reserved grouping key for entries without a project.
const UnassignedProjectKey = "__unassigned__"

// TimeEntry represents one recorded work session.
// This is a pure domain model without database-specific concerns.
type TimeEntry struct {
	ID              string    `json:"id"`
	MemberID        int64     `json:"member_id"`
	ProjectID       int64     `json:"project_id"`
	ProjectLabel    string    `json:"project_label"`
	ProjectColor    string    `json:"project_color"`
	TaskLabel       string    `json:"task_label"`
	ActivityDate    Date      `json:"activity_date"`
	StartTime       string    `json:"start_time"`       // time of day, empty when not recorded
	EndTime         string    `json:"end_time"`         // time of day, empty when not recorded
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	RecordedBy      int64     `json:"recorded_by"`
}

// HasTimeRange returns true if both a start and an end time of day are set.
func (te TimeEntry) HasTimeRange() bool {
	return strings.TrimSpace(te.StartTime) != "" && strings.TrimSpace(te.EndTime) != ""
}

// RangeMinutes returns the duration derived from StartTime and EndTime, or 0.
func (te TimeEntry) RangeMinutes() int {
	if !te.HasTimeRange() {
		return 0
	}
	return duration.MinutesFromRange(te.StartTime, te.EndTime)
}

// Normalize returns a copy whose duration is taken from the time range when
// one is present; a derived duration wins over a supplied one. Times of day
// are rewritten as "15:04" so stored entries sort by start time.
func (te TimeEntry) Normalize() TimeEntry {
	te.TaskLabel = strings.TrimSpace(te.TaskLabel)
	te.ProjectLabel = strings.TrimSpace(te.ProjectLabel)
	te.StartTime = duration.CanonicalClock(strings.TrimSpace(te.StartTime))
	te.EndTime = duration.CanonicalClock(strings.TrimSpace(te.EndTime))
	if derived := te.RangeMinutes(); derived > 0 {
		te.DurationMinutes = derived
	}
	return te
}

// IsValid checks if the time entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.MemberID <= 0 {
		return false
	}
	if strings.TrimSpace(te.TaskLabel) == "" {
		return false
	}
	if te.ActivityDate.IsZero() {
		return false
	}
	if te.HasTimeRange() && te.RangeMinutes() <= 0 {
		return false
	}
	return te.DurationMinutes >= 1
}

// Project returns the grouping key of the entry's project.
func (te TimeEntry) Project() ProjectKey {
	return NewProjectKey(te.ProjectID, te.ProjectLabel)
}

// ProjectKey identifies a project for aggregation. An empty label means the
// entry is unassigned, which is tracked with a flag rather than a label value.
type ProjectKey struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	Unassigned bool   `json:"unassigned"`
}

// NewProjectKey builds the key for a project id and label.
func NewProjectKey(id int64, label string) ProjectKey {
	label = strings.TrimSpace(label)
	if label == "" {
		return ProjectKey{Unassigned: true}
	}
	return ProjectKey{ID: id, Label: label}
}

// String returns the reserved key for unassigned projects and a prefixed
// form otherwise, so that no real label can render as the reserved key.
func (k ProjectKey) String() string {
	if k.Unassigned {
		return UnassignedProjectKey
	}
	return fmt.Sprintf("project:%d:%s", k.ID, k.Label)
}
