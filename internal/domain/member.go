package domain

import (
	"strconv"
	"time"
)

// Member represents a member of the organization together with the raw
// weekly schedule stored in their profile.
type Member struct {
	ID             int64
	DisplayName    string
	WeeklySchedule []byte // JSON list of {start, end, break_minutes} slots
	UpdatedAt      time.Time
}

// NewMember creates a new Member with the given id and name.
func NewMember(id int64, name string) Member {
	return Member{
		ID:          id,
		DisplayName: name,
	}
}

// IsValid checks if the member has valid data.
func (m Member) IsValid() bool {
	return m.ID > 0
}

// String returns the member name for display purposes.
func (m Member) String() string {
	if m.DisplayName == "" {
		return "member #" + strconv.FormatInt(m.ID, 10)
	}
	return m.DisplayName
}
