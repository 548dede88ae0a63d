package api

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"worklog/internal/domain"
	apperrors "worklog/internal/errors"
	"worklog/internal/repository/sqlite"
	"worklog/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.February, 14, 10, 0, 0, 0, time.UTC)

func setupTestAPI(t *testing.T) API {
	t.Helper()
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "worklog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return New(repo, WithClock(func() time.Time { return fixedNow }), func(a *apiImpl) { a.location = time.UTC })
}

func date(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestAPI_CRUD_TimeEntry(t *testing.T) {
	api := setupTestAPI(t)
	ctx := context.Background()

	created, err := api.RecordEntry(ctx, domain.TimeEntry{
		MemberID:     1,
		ProjectID:    3,
		ProjectLabel: " Alpha ",
		ProjectColor: "#ff0000",
		TaskLabel:    "  review  ",
		ActivityDate: date(t, "2025-02-10"),
		StartTime:    "09:00",
		EndTime:      "10:30",
		// the time range wins over this value
		DurationMinutes: 5,
		RecordedBy:      1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 90, created.DurationMinutes)
	assert.Equal(t, "review", created.TaskLabel)
	assert.Equal(t, "Alpha", created.ProjectLabel)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := api.GetEntry(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "2025-02-10", got.ActivityDate.String())
	assert.Equal(t, "09:00", got.StartTime)
	assert.Equal(t, 90, got.DurationMinutes)

	memberID := int64(1)
	entries, err := api.ListEntries(ctx, domain.SearchOptions{MemberID: &memberID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, created.ID, entries[0].ID)

	require.NoError(t, api.DeleteEntry(ctx, created.ID))

	_, err = api.GetEntry(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, apperrors.IsNotFound(api.DeleteEntry(ctx, created.ID)))
}

func TestAPI_RecordEntry_Validation(t *testing.T) {
	api := setupTestAPI(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		entry     domain.TimeEntry
		wantField string
	}{
		{
			name:      "missing member",
			entry:     domain.TimeEntry{TaskLabel: "x", ActivityDate: date(t, "2025-02-10"), DurationMinutes: 10},
			wantField: "member_id",
		},
		{
			name:      "missing task",
			entry:     domain.TimeEntry{MemberID: 1, ActivityDate: date(t, "2025-02-10"), DurationMinutes: 10},
			wantField: "task_label",
		},
		{
			name:      "missing date",
			entry:     domain.TimeEntry{MemberID: 1, TaskLabel: "x", DurationMinutes: 10},
			wantField: "activity_date",
		},
		{
			name:      "reversed range",
			entry:     domain.TimeEntry{MemberID: 1, TaskLabel: "x", ActivityDate: date(t, "2025-02-10"), StartTime: "11:00", EndTime: "10:00", DurationMinutes: 10},
			wantField: "time_range",
		},
		{
			name:      "zero duration",
			entry:     domain.TimeEntry{MemberID: 1, TaskLabel: "x", ActivityDate: date(t, "2025-02-10")},
			wantField: "duration_minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := api.RecordEntry(ctx, tt.entry)
			require.Error(t, err)

			var ve *validation.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.GetFieldErrors(tt.wantField))
		})
	}

	entries, err := api.ListEntries(ctx, domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAPI_ListEntries_DateRange(t *testing.T) {
	api := setupTestAPI(t)
	ctx := context.Background()

	for _, d := range []string{"2025-02-12", "2025-02-01", "2025-03-01", "2025-02-28"} {
		_, err := api.RecordEntry(ctx, domain.TimeEntry{MemberID: 2, TaskLabel: "t", ActivityDate: date(t, d), DurationMinutes: 30})
		require.NoError(t, err)
	}
	_, err := api.RecordEntry(ctx, domain.TimeEntry{MemberID: 3, TaskLabel: "t", ActivityDate: date(t, "2025-02-12"), DurationMinutes: 30})
	require.NoError(t, err)

	entries, err := api.ListEntries(ctx, domain.DateRange(2, date(t, "2025-02-01"), date(t, "2025-02-28")))
	require.NoError(t, err)

	var got []string
	for _, e := range entries {
		got = append(got, e.ActivityDate.String())
	}
	assert.Equal(t, []string{"2025-02-01", "2025-02-12", "2025-02-28"}, got)

	_, err = api.ListEntries(ctx, domain.DateRange(2, date(t, "2025-03-01"), date(t, "2025-02-01")))
	assert.True(t, validation.IsValidationError(err))
}

func TestAPI_ListEntries_OrdersByStartTime(t *testing.T) {
	api := setupTestAPI(t)
	ctx := context.Background()
	day := date(t, "2025-02-10")

	for _, r := range [][2]string{{"3:04 PM", "4:00 PM"}, {"10:00", "10:30"}, {"9:00", "9:45"}, {"11:15 AM", "11:30 AM"}} {
		_, err := api.RecordEntry(ctx, domain.TimeEntry{MemberID: 1, TaskLabel: "t", ActivityDate: day, StartTime: r[0], EndTime: r[1]})
		require.NoError(t, err)
	}

	entries, err := api.ListEntries(ctx, domain.DateRange(1, day, day))
	require.NoError(t, err)

	var got []string
	for _, e := range entries {
		got = append(got, e.StartTime+"-"+e.EndTime)
	}
	assert.Equal(t, []string{"09:00-09:45", "10:00-10:30", "11:15-11:30", "15:04-16:00"}, got)
}

func TestAPI_GetEntry_BlankID(t *testing.T) {
	api := setupTestAPI(t)

	_, err := api.GetEntry(context.Background(), "  ")
	assert.True(t, validation.IsValidationError(err))
	assert.True(t, validation.IsValidationError(api.DeleteEntry(context.Background(), "")))
}

func TestAPI_SetMemberSchedule(t *testing.T) {
	api := setupTestAPI(t)
	ctx := context.Background()

	schedule := []byte(`[{"start":"09:00","end":"17:00","break_minutes":60}]`)
	member, err := api.SetMemberSchedule(ctx, 7, "Ada", schedule)
	require.NoError(t, err)
	assert.Equal(t, int64(7), member.ID)
	assert.Equal(t, "Ada", member.DisplayName)
	assert.JSONEq(t, string(schedule), string(member.WeeklySchedule))

	// An empty name keeps the stored one.
	member, err = api.SetMemberSchedule(ctx, 7, "", []byte(`[{"start":"08:00","end":"12:00"}]`))
	require.NoError(t, err)
	assert.Equal(t, "Ada", member.DisplayName)

	got, err := api.GetMember(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.DisplayName)
	assert.JSONEq(t, `[{"start":"08:00","end":"12:00"}]`, string(got.WeeklySchedule))

	// An empty schedule clears it.
	_, err = api.SetMemberSchedule(ctx, 7, "Ada", nil)
	require.NoError(t, err)
	got, err = api.GetMember(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, got.WeeklySchedule)

	_, err = api.SetMemberSchedule(ctx, 8, "Bob", nil)
	require.NoError(t, err)
	members, err := api.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, int64(7), members[0].ID)
	assert.Equal(t, int64(8), members[1].ID)
}

func TestAPI_SetMemberSchedule_Invalid(t *testing.T) {
	api := setupTestAPI(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		memberID int64
		schedule string
	}{
		{name: "bad member id", memberID: 0, schedule: ""},
		{name: "not json", memberID: 1, schedule: "mornings"},
		{name: "bad clock", memberID: 1, schedule: `[{"start":"9h","end":"17:00"}]`},
		{name: "reversed slot", memberID: 1, schedule: `[{"start":"17:00","end":"09:00"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := api.SetMemberSchedule(ctx, tt.memberID, "x", []byte(tt.schedule))
			assert.True(t, validation.IsValidationError(err))
		})
	}

	_, err := api.GetMember(ctx, 1)
	assert.True(t, apperrors.IsNotFound(err))
}
