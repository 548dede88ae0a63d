package sqlite

import "time"

// Member represents a row of the members table.
type Member struct {
	ID             int64
	DisplayName    string
	WeeklySchedule *string // raw JSON, NULL when no schedule was declared
	UpdatedAt      time.Time
}

// TimeEntry represents a row of the time_entries table.
// Dates and times of day are kept in their textual column form.
type TimeEntry struct {
	ID              string
	MemberID        int64
	ProjectID       int64
	ProjectLabel    string
	ProjectColor    string
	TaskLabel       string
	ActivityDate    *string // YYYY-MM-DD, NULL when missing
	StartTime       *string
	EndTime         *string
	DurationMinutes int
	Notes           string
	CreatedAt       time.Time
	RecordedBy      int64
}

// SearchOptions contains all possible search parameters
type SearchOptions struct {
	MemberID  *int64
	ProjectID *int64
	From      *string // inclusive YYYY-MM-DD
	To        *string // inclusive YYYY-MM-DD
}
