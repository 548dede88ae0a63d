package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"worklog/internal/config"
	"worklog/internal/contract"
	"worklog/internal/domain"
	apperrors "worklog/internal/errors"
	"worklog/internal/logging"
	"worklog/internal/report"
	"worklog/internal/repository/sqlite"
	"worklog/internal/validation"
)

// Clock returns the current time. Only the service reads it; the engine is
// always handed an explicit time.
type Clock func() time.Time

type Option func(*reportingServiceImpl)

func WithClock(clock Clock) Option {
	return func(s *reportingServiceImpl) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(s *reportingServiceImpl) {
		if logger != nil {
			s.logger = logger.WithComponent(logging.ComponentReporting)
		}
	}
}

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo            sqlite.Repository
	mapper          *domain.Mapper
	entryValidator  *validation.TimeEntryValidator
	memberValidator *validation.MemberValidator
	report          config.ReportConfig
	location        *time.Location
	clock           Clock
	logger          *logging.Logger
}

// NewReportingService creates a new ReportingService instance. A nil cfg
// uses the defaults.
func NewReportingService(repo sqlite.Repository, cfg *config.Config, opts ...Option) ReportingService {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	s := &reportingServiceImpl{
		repo:            repo,
		mapper:          domain.NewMapper(),
		entryValidator:  validation.NewTimeEntryValidatorWithConfig(cfg),
		memberValidator: validation.NewMemberValidator(),
		report:          cfg.Report,
		location:        cfg.Location(),
		clock:           time.Now,
		logger:          logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *reportingServiceImpl) GetRollup(ctx context.Context, query ReportQuery) (*report.Rollup, error) {
	entries, err := s.loadEntries(ctx, query.searchOptions())
	if err != nil {
		return nil, err
	}

	rollup := report.BuildRollup(entries)
	s.logger.DebugContext(ctx, "rollup computed",
		logging.FieldCount, len(entries),
		"projects", len(rollup.Projects),
		"members", len(rollup.Members))
	return &rollup, nil
}

func (s *reportingServiceImpl) GetMonthlySeries(ctx context.Context, query ReportQuery) (*report.Series, error) {
	entries, err := s.loadEntries(ctx, query.searchOptions())
	if err != nil {
		return nil, err
	}

	series := report.BuildMonthlySeries(entries, limitOr(query.Limit, s.report.MonthlyLimit))
	s.logger.DebugContext(ctx, "monthly series computed", logging.FieldCount, len(entries), logging.FieldPeriod, "month")
	return &series, nil
}

func (s *reportingServiceImpl) GetWeeklySeries(ctx context.Context, query ReportQuery) (*report.Series, error) {
	entries, err := s.loadEntries(ctx, query.searchOptions())
	if err != nil {
		return nil, err
	}

	series := report.BuildWeeklySeries(entries, limitOr(query.Limit, s.report.WeeklyLimit))
	s.logger.DebugContext(ctx, "weekly series computed", logging.FieldCount, len(entries), logging.FieldPeriod, "week")
	return &series, nil
}

// GetWeeklyBalance loads entries and members concurrently. When the query
// names a member only that member's contract counts toward the aggregate.
func (s *reportingServiceImpl) GetWeeklyBalance(ctx context.Context, query ReportQuery) (*report.BalanceReport, error) {
	opts := query.searchOptions()
	if err := s.entryValidator.ValidateSearchOptions(opts); err != nil {
		return nil, err
	}

	var entries []domain.TimeEntry
	var members []domain.Member

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.searchEntries(gctx, opts)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.loadMembers(gctx, query.MemberID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	contracts := contract.ResolveMembers(members)
	weekly := report.BuildWeeklySeries(entries, limitOr(query.Limit, s.report.WeeklyLimit))
	balance := report.BuildBalanceReport(weekly, contracts)

	s.logger.DebugContext(ctx, "weekly balance computed",
		logging.FieldCount, len(entries),
		"contracts", len(contracts),
		"aggregate_balance", balance.AggregateBalance)
	return &balance, nil
}

// GetCalendar fetches the entries of the whole grid range, padding days
// included, and lays out the month.
func (s *reportingServiceImpl) GetCalendar(ctx context.Context, query CalendarQuery) (*report.CalendarMonth, error) {
	if err := s.memberValidator.ValidateMemberID(query.MemberID); err != nil {
		return nil, err
	}

	now := s.clock().In(s.location)
	opts := report.CalendarOptions{
		MemberID:    query.MemberID,
		MonthKey:    query.MonthKey,
		StartOfWeek: s.report.StartOfWeek,
		Now:         now,
	}

	from, to, ok := report.CalendarRange(query.MonthKey, s.report.StartOfWeek, now)
	if !ok {
		month := report.BuildCalendarMonth(opts, nil)
		return &month, nil
	}

	entries, err := s.searchEntries(ctx, domain.DateRange(query.MemberID, from, to))
	if err != nil {
		return nil, err
	}

	month := report.BuildCalendarMonth(opts, entries)
	s.logger.DebugContext(ctx, "calendar computed",
		logging.FieldMember, query.MemberID,
		logging.FieldMonth, month.MonthKey,
		logging.FieldFrom, from.String(),
		logging.FieldTo, to.String(),
		logging.FieldCount, len(entries))
	return &month, nil
}

func (s *reportingServiceImpl) loadEntries(ctx context.Context, opts domain.SearchOptions) ([]domain.TimeEntry, error) {
	if err := s.entryValidator.ValidateSearchOptions(opts); err != nil {
		return nil, err
	}
	return s.searchEntries(ctx, opts)
}

func (s *reportingServiceImpl) searchEntries(ctx context.Context, opts domain.SearchOptions) ([]domain.TimeEntry, error) {
	dbEntries, err := s.repo.SearchTimeEntries(ctx, s.mapper.SearchOptions.ToDatabase(opts))
	if err != nil {
		return nil, err
	}
	return s.mapper.TimeEntry.FromDatabaseSlice(dbEntries), nil
}

// loadMembers returns every member, or only memberID when it is set. A
// member without a profile has no contract.
func (s *reportingServiceImpl) loadMembers(ctx context.Context, memberID *int64) ([]domain.Member, error) {
	if memberID != nil {
		dbMember, err := s.repo.GetMember(ctx, *memberID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return []domain.Member{}, nil
			}
			return nil, err
		}
		return []domain.Member{s.mapper.Member.FromDatabase(*dbMember)}, nil
	}

	dbMembers, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Member.FromDatabaseSlice(dbMembers), nil
}

func limitOr(limit, fallback int) int {
	if limit > 0 {
		return limit
	}
	return fallback
}
