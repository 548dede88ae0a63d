package domain

import (
	"testing"
	"time"

	"worklog/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeEntryMapper_RoundTrip(t *testing.T) {
	mapper := NewTimeEntryMapper()
	created := time.Date(2025, time.January, 6, 18, 0, 0, 0, time.UTC)

	entry := TimeEntry{
		ID:              "e-1",
		MemberID:        4,
		ProjectID:       9,
		ProjectLabel:    "Atelier",
		ProjectColor:    "#ff0000",
		TaskLabel:       "Montage",
		ActivityDate:    NewDate(2025, time.January, 6),
		StartTime:       "09:00",
		EndTime:         "11:00",
		DurationMinutes: 120,
		Notes:           "ras",
		CreatedAt:       created,
		RecordedBy:      2,
	}

	dbEntry := mapper.ToDatabase(entry)
	require.NotNil(t, dbEntry.ActivityDate)
	assert.Equal(t, "2025-01-06", *dbEntry.ActivityDate)
	require.NotNil(t, dbEntry.StartTime)
	assert.Equal(t, "09:00", *dbEntry.StartTime)

	assert.Equal(t, entry, mapper.FromDatabase(dbEntry))
}

func TestTimeEntryMapper_OptionalColumns(t *testing.T) {
	mapper := NewTimeEntryMapper()

	dbEntry := mapper.ToDatabase(TimeEntry{MemberID: 1, TaskLabel: "x", DurationMinutes: 5})
	assert.Nil(t, dbEntry.ActivityDate)
	assert.Nil(t, dbEntry.StartTime)
	assert.Nil(t, dbEntry.EndTime)

	bad := "not-a-date"
	entry := mapper.FromDatabase(sqlite.TimeEntry{ActivityDate: &bad})
	assert.True(t, entry.ActivityDate.IsZero())
	assert.Equal(t, "", entry.StartTime)
}

func TestMemberMapper(t *testing.T) {
	mapper := NewMemberMapper()

	member := Member{ID: 3, DisplayName: "Ana", WeeklySchedule: []byte(`[{"start":"09:00","end":"17:00"}]`)}
	dbMember := mapper.ToDatabase(member)
	require.NotNil(t, dbMember.WeeklySchedule)
	assert.Equal(t, member, mapper.FromDatabase(dbMember))

	empty := mapper.ToDatabase(Member{ID: 5})
	assert.Nil(t, empty.WeeklySchedule)
	assert.Nil(t, mapper.FromDatabase(empty).WeeklySchedule)

	members := mapper.FromDatabaseSlice([]*sqlite.Member{&dbMember, &empty})
	assert.Len(t, members, 2)
	assert.Equal(t, int64(5), members[1].ID)
}

func TestSearchOptionsMapper(t *testing.T) {
	mapper := NewSearchOptionsMapper()

	opts := DateRange(4, NewDate(2025, time.January, 27), NewDate(2025, time.March, 2))
	dbOpts := mapper.ToDatabase(opts)
	require.NotNil(t, dbOpts.From)
	require.NotNil(t, dbOpts.To)
	assert.Equal(t, "2025-01-27", *dbOpts.From)
	assert.Equal(t, "2025-03-02", *dbOpts.To)
	assert.Equal(t, int64(4), *dbOpts.MemberID)
	assert.Nil(t, dbOpts.ProjectID)

	zero := Date{}
	dbOpts = mapper.ToDatabase(SearchOptions{From: &zero})
	assert.Nil(t, dbOpts.From)
}

func TestNewMapper(t *testing.T) {
	mapper := NewMapper()
	assert.NotNil(t, mapper.Member)
	assert.NotNil(t, mapper.TimeEntry)
	assert.NotNil(t, mapper.SearchOptions)
}
