package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"worklog/internal/domain"
	"worklog/internal/errors"
	"worklog/internal/services"
)

// reportFilter holds the filter flags shared by list and the reports.
type reportFilter struct {
	MemberID  int64
	ProjectID int64
	From      string
	To        string
	Limit     int

	projectSet bool
}

func addFilterFlags(cmd *cobra.Command, f *reportFilter) {
	flags := cmd.Flags()
	flags.Int64VarP(&f.MemberID, "member", "m", 0, "Only entries of this member")
	flags.Int64VarP(&f.ProjectID, "project", "p", 0, "Only entries of this project id")
	flags.StringVar(&f.From, "from", "", "First activity date, YYYY-MM-DD")
	flags.StringVar(&f.To, "to", "", "Last activity date, YYYY-MM-DD")
}

func addLimitFlag(cmd *cobra.Command, f *reportFilter) {
	cmd.Flags().IntVarP(&f.Limit, "limit", "n", 0, "Most recent periods to keep (0 uses the configured limit)")
}

// bind records which optional flags were set on the command line.
func (f *reportFilter) bind(cmd *cobra.Command) {
	f.projectSet = cmd.Flags().Changed("project")
}

func (f reportFilter) searchOptions() (domain.SearchOptions, error) {
	query, err := f.query()
	if err != nil {
		return domain.SearchOptions{}, err
	}
	return domain.SearchOptions{
		MemberID:  query.MemberID,
		ProjectID: query.ProjectID,
		From:      query.From,
		To:        query.To,
	}, nil
}

func (f reportFilter) query() (services.ReportQuery, error) {
	query := services.ReportQuery{Limit: f.Limit}

	if f.MemberID != 0 {
		memberID := f.MemberID
		query.MemberID = &memberID
	}
	if f.projectSet {
		projectID := f.ProjectID
		query.ProjectID = &projectID
	}

	from, err := parseDateFlag("from", f.From)
	if err != nil {
		return services.ReportQuery{}, err
	}
	to, err := parseDateFlag("to", f.To)
	if err != nil {
		return services.ReportQuery{}, err
	}
	query.From = from
	query.To = to

	return query, nil
}

func parseDateFlag(name, value string) (*domain.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return nil, errors.NewInvalidInputError(name, value, "expected YYYY-MM-DD")
	}
	return &d, nil
}
