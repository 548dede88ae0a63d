package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"worklog/internal/errors"
	"worklog/internal/logging"
	"worklog/internal/repository/sqlite/migrations"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Repository is the storage used by the API and the reporting service.
type Repository interface {
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id string) (*TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, id string) error
	SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error)

	UpsertMember(ctx context.Context, member *Member) error
	GetMember(ctx context.Context, id int64) (*Member, error)
	ListMembers(ctx context.Context) ([]*Member, error)

	Close() error
}

// Settings is the part of the application configuration the repository reads.
type Settings interface {
	GetQueryTimeout() time.Duration
}

type Option func(*SQLiteRepository)

// WithQueryTimeout bounds every statement. Zero disables the bound.
func WithQueryTimeout(timeout time.Duration) Option {
	return func(r *SQLiteRepository) {
		r.queryTimeout = timeout
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(r *SQLiteRepository) {
		if logger != nil {
			r.logger = logger.WithComponent(logging.ComponentStorage)
		}
	}
}

// WithClock replaces time.Now for created_at and updated_at stamps.
func WithClock(now func() time.Time) Option {
	return func(r *SQLiteRepository) {
		if now != nil {
			r.now = now
		}
	}
}

type SQLiteRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
	logger       *logging.Logger
	now          func() time.Time
}

// New opens the database file at dbPath, creating its directory, and brings
// the schema up to date.
func New(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	repo := &SQLiteRepository{
		logger: logging.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(repo)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.NewDatabaseError("create database directory", err)
	}

	version, err := migrations.Up(dbPath, repo.logger)
	if err != nil {
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("ping database", err)
	}

	repo.db = db
	repo.logger.Debug("database ready", logging.FieldPath, dbPath, logging.FieldVersion, version)
	return repo, nil
}

// NewWithConfig is New with the query timeout taken from settings.
func NewWithConfig(dbPath string, settings Settings, opts ...Option) (*SQLiteRepository, error) {
	if settings != nil {
		opts = append([]Option{WithQueryTimeout(settings.GetQueryTimeout())}, opts...)
	}
	return New(dbPath, opts...)
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateTimeEntry inserts entry. A missing ID is generated and a zero
// CreatedAt is stamped with the current time; both are written back.
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now().UTC()
	}

	query := `
	INSERT INTO time_entries (` + timeEntryColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	err := Execute(ctx, r.db, query, "insert time entry",
		entry.ID,
		entry.MemberID,
		entry.ProjectID,
		entry.ProjectLabel,
		entry.ProjectColor,
		entry.TaskLabel,
		NullableString(entry.ActivityDate),
		NullableString(entry.StartTime),
		NullableString(entry.EndTime),
		entry.DurationMinutes,
		entry.Notes,
		FormatTimeForDB(entry.CreatedAt),
		entry.RecordedBy,
	)
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "time entry stored", logging.FieldEntry, entry.ID, logging.FieldMember, entry.MemberID)
	return nil
}

func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id string) (*TimeEntry, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTimeEntry, "time entry", id, id)
}

func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", id, id)
}

// SearchTimeEntries returns the entries matching every set option, ordered
// by activity date then start time. A date bound excludes entries without
// an activity date.
func (r *SQLiteRepository) SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	var conditions []string
	var args []any

	if opts.MemberID != nil {
		conditions = append(conditions, "member_id = ?")
		args = append(args, *opts.MemberID)
	}
	if opts.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *opts.ProjectID)
	}
	if opts.From != nil {
		conditions = append(conditions, "activity_date >= ?")
		args = append(args, *opts.From)
	}
	if opts.To != nil {
		conditions = append(conditions, "activity_date <= ?")
		args = append(args, *opts.To)
	}

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY activity_date ASC, start_time ASC, created_at ASC, id ASC"
	logging.Debugf("search time entries: %s %v\n", query, args)

	entries, err := QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries", args...)
	if err != nil {
		return nil, err
	}
	r.logger.DebugContext(ctx, "time entries searched", logging.FieldCount, len(entries))
	return entries, nil
}

// UpsertMember creates the member or replaces its name and schedule.
func (r *SQLiteRepository) UpsertMember(ctx context.Context, member *Member) error {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	if member.UpdatedAt.IsZero() {
		member.UpdatedAt = r.now().UTC()
	}

	query := `
	INSERT INTO members (` + memberColumns + `)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		display_name = excluded.display_name,
		weekly_schedule = excluded.weekly_schedule,
		updated_at = excluded.updated_at`

	return Execute(ctx, r.db, query, "upsert member",
		member.ID,
		member.DisplayName,
		NullableString(member.WeeklySchedule),
		FormatTimeForDB(member.UpdatedAt),
	)
}

func (r *SQLiteRepository) GetMember(ctx context.Context, id int64) (*Member, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := `SELECT ` + memberColumns + ` FROM members WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanMember, "member", strconv.FormatInt(id, 10), id)
}

func (r *SQLiteRepository) ListMembers(ctx context.Context) ([]*Member, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := `SELECT ` + memberColumns + ` FROM members ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanMembers, "members")
}

var _ Repository = (*SQLiteRepository)(nil)
