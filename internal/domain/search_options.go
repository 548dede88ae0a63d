package domain

// SearchOptions represents search criteria for time entries.
// This is a domain model that mirrors the database search options
// but belongs to the domain layer for proper separation of concerns.
type SearchOptions struct {
	MemberID  *int64
	ProjectID *int64
	From      *Date // inclusive
	To        *Date // inclusive
}

// DateRange returns search options for one member over an inclusive date range.
func DateRange(memberID int64, from, to Date) SearchOptions {
	return SearchOptions{
		MemberID: &memberID,
		From:     &from,
		To:       &to,
	}
}
