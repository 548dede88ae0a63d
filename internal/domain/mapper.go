package domain

import (
	"worklog/internal/repository/sqlite"
)

// MemberMapper handles conversion between domain and database Member models.
type MemberMapper struct{}

// NewMemberMapper creates a new MemberMapper instance.
func NewMemberMapper() *MemberMapper {
	return &MemberMapper{}
}

// ToDatabase converts a domain Member to a database Member.
func (m *MemberMapper) ToDatabase(member Member) sqlite.Member {
	dbMember := sqlite.Member{
		ID:          member.ID,
		DisplayName: member.DisplayName,
		UpdatedAt:   member.UpdatedAt,
	}
	if len(member.WeeklySchedule) > 0 {
		schedule := string(member.WeeklySchedule)
		dbMember.WeeklySchedule = &schedule
	}
	return dbMember
}

// FromDatabase converts a database Member to a domain Member.
func (m *MemberMapper) FromDatabase(dbMember sqlite.Member) Member {
	member := Member{
		ID:          dbMember.ID,
		DisplayName: dbMember.DisplayName,
		UpdatedAt:   dbMember.UpdatedAt,
	}
	if dbMember.WeeklySchedule != nil {
		member.WeeklySchedule = []byte(*dbMember.WeeklySchedule)
	}
	return member
}

// FromDatabaseSlice converts a slice of database Members to domain Members.
func (m *MemberMapper) FromDatabaseSlice(dbMembers []*sqlite.Member) []Member {
	members := make([]Member, len(dbMembers))
	for i, dbMember := range dbMembers {
		members[i] = m.FromDatabase(*dbMember)
	}
	return members
}

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct{}

// NewTimeEntryMapper creates a new TimeEntryMapper instance.
func NewTimeEntryMapper() *TimeEntryMapper {
	return &TimeEntryMapper{}
}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(entry TimeEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:              entry.ID,
		MemberID:        entry.MemberID,
		ProjectID:       entry.ProjectID,
		ProjectLabel:    entry.ProjectLabel,
		ProjectColor:    entry.ProjectColor,
		TaskLabel:       entry.TaskLabel,
		ActivityDate:    optionalString(entry.ActivityDate.String()),
		StartTime:       optionalString(entry.StartTime),
		EndTime:         optionalString(entry.EndTime),
		DurationMinutes: entry.DurationMinutes,
		Notes:           entry.Notes,
		CreatedAt:       entry.CreatedAt,
		RecordedBy:      entry.RecordedBy,
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
// An unparsable activity date maps to an absent Date.
func (m *TimeEntryMapper) FromDatabase(dbEntry sqlite.TimeEntry) TimeEntry {
	entry := TimeEntry{
		ID:              dbEntry.ID,
		MemberID:        dbEntry.MemberID,
		ProjectID:       dbEntry.ProjectID,
		ProjectLabel:    dbEntry.ProjectLabel,
		ProjectColor:    dbEntry.ProjectColor,
		TaskLabel:       dbEntry.TaskLabel,
		StartTime:       derefString(dbEntry.StartTime),
		EndTime:         derefString(dbEntry.EndTime),
		DurationMinutes: dbEntry.DurationMinutes,
		Notes:           dbEntry.Notes,
		CreatedAt:       dbEntry.CreatedAt,
		RecordedBy:      dbEntry.RecordedBy,
	}
	if dbEntry.ActivityDate != nil {
		if date, err := ParseDate(*dbEntry.ActivityDate); err == nil {
			entry.ActivityDate = date
		}
	}
	return entry
}

// FromDatabaseSlice converts a slice of database TimeEntries to domain TimeEntries.
func (m *TimeEntryMapper) FromDatabaseSlice(dbEntries []*sqlite.TimeEntry) []TimeEntry {
	entries := make([]TimeEntry, len(dbEntries))
	for i, dbEntry := range dbEntries {
		entries[i] = m.FromDatabase(*dbEntry)
	}
	return entries
}

// SearchOptionsMapper handles conversion between domain and database SearchOptions.
type SearchOptionsMapper struct{}

// NewSearchOptionsMapper creates a new SearchOptionsMapper instance.
func NewSearchOptionsMapper() *SearchOptionsMapper {
	return &SearchOptionsMapper{}
}

// ToDatabase converts domain SearchOptions to database SearchOptions.
func (m *SearchOptionsMapper) ToDatabase(opts SearchOptions) sqlite.SearchOptions {
	dbOpts := sqlite.SearchOptions{
		MemberID:  opts.MemberID,
		ProjectID: opts.ProjectID,
	}
	if opts.From != nil && !opts.From.IsZero() {
		from := opts.From.String()
		dbOpts.From = &from
	}
	if opts.To != nil && !opts.To.IsZero() {
		to := opts.To.String()
		dbOpts.To = &to
	}
	return dbOpts
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Member        *MemberMapper
	TimeEntry     *TimeEntryMapper
	SearchOptions *SearchOptionsMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Member:        NewMemberMapper(),
		TimeEntry:     NewTimeEntryMapper(),
		SearchOptions: NewSearchOptionsMapper(),
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
