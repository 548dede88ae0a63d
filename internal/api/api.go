package api

import (
	"context"
	"strings"
	"time"

	"worklog/internal/config"
	"worklog/internal/domain"
	apperrors "worklog/internal/errors"
	"worklog/internal/logging"
	"worklog/internal/repository/sqlite"
	"worklog/internal/validation"
)

// API defines the time entry and member operations.
type API interface {
	// Time entries
	RecordEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error)
	RecordEntryFromInput(ctx context.Context, input EntryInput) (*domain.TimeEntry, error)
	GetEntry(ctx context.Context, id string) (*domain.TimeEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context, opts domain.SearchOptions) ([]*domain.TimeEntry, error)

	// Members
	SetMemberSchedule(ctx context.Context, memberID int64, name string, schedule []byte) (*domain.Member, error)
	GetMember(ctx context.Context, id int64) (*domain.Member, error)
	ListMembers(ctx context.Context) ([]*domain.Member, error)
}

type Option func(*apiImpl)

// WithConfig applies the validation limits of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(a *apiImpl) {
		if cfg != nil {
			a.timeEntryValidator = validation.NewTimeEntryValidatorWithConfig(cfg)
			a.location = cfg.Location()
		}
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(a *apiImpl) {
		if logger != nil {
			a.logger = logger.WithComponent(logging.ComponentAPI)
		}
	}
}

// WithClock sets the clock used to resolve "today" in entry input.
func WithClock(now func() time.Time) Option {
	return func(a *apiImpl) {
		if now != nil {
			a.now = now
		}
	}
}

type apiImpl struct {
	repo               sqlite.Repository
	mapper             *domain.Mapper
	timeEntryValidator *validation.TimeEntryValidator
	memberValidator    *validation.MemberValidator
	logger             *logging.Logger
	now                func() time.Time
	location           *time.Location
}

func New(repo sqlite.Repository, opts ...Option) API {
	a := &apiImpl{
		repo:               repo,
		mapper:             domain.NewMapper(),
		timeEntryValidator: validation.NewTimeEntryValidator(),
		memberValidator:    validation.NewMemberValidator(),
		logger:             logging.Nop(),
		now:                time.Now,
		location:           time.Local,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RecordEntry normalizes the entry, validates it and stores it. A duration
// derived from the time range replaces the supplied one.
func (a *apiImpl) RecordEntry(ctx context.Context, entry domain.TimeEntry) (*domain.TimeEntry, error) {
	entry = entry.Normalize()
	if err := a.timeEntryValidator.ValidateTimeEntry(entry); err != nil {
		return nil, err
	}

	dbEntry := a.mapper.TimeEntry.ToDatabase(entry)
	if err := a.repo.CreateTimeEntry(ctx, &dbEntry); err != nil {
		return nil, err
	}

	stored := a.mapper.TimeEntry.FromDatabase(dbEntry)
	a.logger.InfoContext(ctx, "time entry recorded",
		logging.FieldEntry, stored.ID,
		logging.FieldMember, stored.MemberID,
		"minutes", stored.DurationMinutes)
	return &stored, nil
}

func (a *apiImpl) GetEntry(ctx context.Context, id string) (*domain.TimeEntry, error) {
	if err := a.timeEntryValidator.ValidateEntryID(id); err != nil {
		return nil, err
	}

	dbEntry, err := a.repo.GetTimeEntry(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	entry := a.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

func (a *apiImpl) DeleteEntry(ctx context.Context, id string) error {
	if err := a.timeEntryValidator.ValidateEntryID(id); err != nil {
		return err
	}
	if err := a.repo.DeleteTimeEntry(ctx, strings.TrimSpace(id)); err != nil {
		return err
	}
	a.logger.InfoContext(ctx, "time entry deleted", logging.FieldEntry, id)
	return nil
}

func (a *apiImpl) ListEntries(ctx context.Context, opts domain.SearchOptions) ([]*domain.TimeEntry, error) {
	if err := a.timeEntryValidator.ValidateSearchOptions(opts); err != nil {
		return nil, err
	}

	dbEntries, err := a.repo.SearchTimeEntries(ctx, a.mapper.SearchOptions.ToDatabase(opts))
	if err != nil {
		return nil, err
	}
	entries := make([]*domain.TimeEntry, len(dbEntries))
	for i, dbEntry := range dbEntries {
		entry := a.mapper.TimeEntry.FromDatabase(*dbEntry)
		entries[i] = &entry
	}
	return entries, nil
}

// SetMemberSchedule creates or updates a member. An empty name keeps the
// stored one; the schedule is always replaced, and an empty one clears it.
func (a *apiImpl) SetMemberSchedule(ctx context.Context, memberID int64, name string, schedule []byte) (*domain.Member, error) {
	member := domain.NewMember(memberID, strings.TrimSpace(name))
	if trimmed := strings.TrimSpace(string(schedule)); trimmed != "" {
		member.WeeklySchedule = []byte(trimmed)
	}
	if err := a.memberValidator.ValidateMember(member); err != nil {
		return nil, err
	}

	if member.DisplayName == "" {
		existing, err := a.GetMember(ctx, memberID)
		switch {
		case err == nil:
			member.DisplayName = existing.DisplayName
		case !apperrors.IsNotFound(err):
			return nil, err
		}
	}

	dbMember := a.mapper.Member.ToDatabase(member)
	if err := a.repo.UpsertMember(ctx, &dbMember); err != nil {
		return nil, err
	}

	stored := a.mapper.Member.FromDatabase(dbMember)
	a.logger.InfoContext(ctx, "member schedule set", logging.FieldMember, stored.ID)
	return &stored, nil
}

func (a *apiImpl) GetMember(ctx context.Context, id int64) (*domain.Member, error) {
	if err := a.memberValidator.ValidateMemberID(id); err != nil {
		return nil, err
	}

	dbMember, err := a.repo.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	member := a.mapper.Member.FromDatabase(*dbMember)
	return &member, nil
}

func (a *apiImpl) ListMembers(ctx context.Context) ([]*domain.Member, error) {
	dbMembers, err := a.repo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	members := make([]*domain.Member, len(dbMembers))
	for i, dbMember := range dbMembers {
		member := a.mapper.Member.FromDatabase(*dbMember)
		members[i] = &member
	}
	return members, nil
}
