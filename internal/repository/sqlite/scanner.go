package sqlite

import (
	"database/sql"
	"fmt"
)

// Scanner is implemented by both *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

const timeEntryColumns = `id, member_id, project_id, project_label, project_color, task_label,
	activity_date, start_time, end_time, duration_minutes, notes, created_at, recorded_by`

const memberColumns = `id, display_name, weekly_schedule, updated_at`

func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var activityDate, startTime, endTime sql.NullString
	var createdAt string

	err := scanner.Scan(
		&entry.ID,
		&entry.MemberID,
		&entry.ProjectID,
		&entry.ProjectLabel,
		&entry.ProjectColor,
		&entry.TaskLabel,
		&activityDate,
		&startTime,
		&endTime,
		&entry.DurationMinutes,
		&entry.Notes,
		&createdAt,
		&entry.RecordedBy,
	)
	if err != nil {
		return nil, err
	}

	entry.ActivityDate = nullStringPtr(activityDate)
	entry.StartTime = nullStringPtr(startTime)
	entry.EndTime = nullStringPtr(endTime)

	if entry.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("time entry %s: created_at: %w", entry.ID, err)
	}
	return entry, nil
}

func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	var entries []*TimeEntry
	for rows.Next() {
		entry, err := ScanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func ScanMember(scanner Scanner) (*Member, error) {
	member := &Member{}
	var schedule sql.NullString
	var updatedAt string

	if err := scanner.Scan(&member.ID, &member.DisplayName, &schedule, &updatedAt); err != nil {
		return nil, err
	}
	member.WeeklySchedule = nullStringPtr(schedule)

	var err error
	if member.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, fmt.Errorf("member %d: updated_at: %w", member.ID, err)
	}
	return member, nil
}

func ScanMembers(rows Rows) ([]*Member, error) {
	var members []*Member
	for rows.Next() {
		member, err := ScanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
