package report

import (
	"worklog/internal/duration"
)

// Balance compares the minutes worked in a week with the contract.
type Balance struct {
	ActualMinutes     int `json:"actual_minutes"`
	ExpectedMinutes   int `json:"expected_minutes"`
	RequiredMinutes   int `json:"required_minutes"`
	ExtraMinutes      int `json:"extra_minutes"`
	DeficitMinutes    int `json:"deficit_minutes"`
	DifferenceMinutes int `json:"difference_minutes"` // signed, actual - expected

	Actual     string `json:"actual"`
	Expected   string `json:"expected"`
	Required   string `json:"required"`
	Extra      string `json:"extra"`
	Deficit    string `json:"deficit"`
	Difference string `json:"difference"`
}

// ComputeBalance applies the contract arithmetic to one week. A member with
// no known contract (expected 0) never shows a deficit.
func ComputeBalance(actual, expected int) Balance {
	if actual < 0 {
		actual = 0
	}
	if expected < 0 {
		expected = 0
	}

	b := Balance{
		ActualMinutes:     actual,
		ExpectedMinutes:   expected,
		RequiredMinutes:   actual,
		DifferenceMinutes: actual - expected,
	}
	if expected > 0 {
		b.RequiredMinutes = min(actual, expected)
		b.DeficitMinutes = max(0, expected-actual)
	}
	b.ExtraMinutes = max(0, actual-expected)

	b.Actual = duration.Format(b.ActualMinutes)
	b.Expected = duration.Format(b.ExpectedMinutes)
	b.Required = duration.Format(b.RequiredMinutes)
	b.Extra = duration.Format(b.ExtraMinutes)
	b.Deficit = duration.Format(b.DeficitMinutes)
	b.Difference = duration.FormatSigned(b.DifferenceMinutes)
	return b
}

// ApplyBalance returns a copy of the weekly buckets with their balance set
// against expected minutes per week. The input is not modified.
func ApplyBalance(buckets []Bucket, expected int) []Bucket {
	out := make([]Bucket, len(buckets))
	for i, bucket := range buckets {
		b := ComputeBalance(bucket.Minutes, expected)
		bucket.Balance = &b
		out[i] = bucket
	}
	return out
}

// SumWeeklyDifference is the cumulative balance of a series. Buckets without
// a balance count as zero.
func SumWeeklyDifference(buckets []Bucket) int {
	total := 0
	for _, bucket := range buckets {
		if bucket.Balance != nil {
			total += bucket.Balance.DifferenceMinutes
		}
	}
	return total
}

// BalanceReport is the weekly series with balances applied.
type BalanceReport struct {
	All               []Bucket           `json:"all"`
	ByMember          map[int64][]Bucket `json:"by_member"`
	MemberContracts   map[int64]int      `json:"member_contracts"`
	MemberBalances    map[int64]int      `json:"member_balances"`
	AggregateExpected int                `json:"aggregate_expected"`
	AggregateBalance  int                `json:"aggregate_balance"`

	AggregateBalanceLabel string           `json:"aggregate_balance_label"`
	MemberBalanceLabels   map[int64]string `json:"member_balance_labels"`
}

// BuildBalanceReport overlays contracts onto a weekly series. The aggregate
// series uses the sum of the positive contracts. Every member with entries or
// a positive contract is balanced over the aggregate window, weeks without
// entries counting as zero minutes, so the aggregate balance is the sum of the
// member balances. The input series is not modified.
func BuildBalanceReport(weekly Series, contracts map[int64]int) BalanceReport {
	aggregateExpected := 0
	for _, minutes := range contracts {
		if minutes > 0 {
			aggregateExpected += minutes
		}
	}

	memberIDs := make(map[int64]struct{}, len(weekly.ByMember)+len(contracts))
	for memberID := range weekly.ByMember {
		memberIDs[memberID] = struct{}{}
	}
	for memberID, minutes := range contracts {
		if minutes > 0 {
			memberIDs[memberID] = struct{}{}
		}
	}

	report := BalanceReport{
		All:                 ApplyBalance(weekly.All, aggregateExpected),
		ByMember:            make(map[int64][]Bucket, len(memberIDs)),
		MemberContracts:     make(map[int64]int, len(memberIDs)),
		MemberBalances:      make(map[int64]int, len(memberIDs)),
		MemberBalanceLabels: make(map[int64]string, len(memberIDs)),
		AggregateExpected:   aggregateExpected,
	}

	for memberID := range memberIDs {
		expected := max(0, contracts[memberID])
		applied := ApplyBalance(alignToWindow(weekly.All, weekly.ByMember[memberID]), expected)
		balance := SumWeeklyDifference(applied)

		report.ByMember[memberID] = applied
		report.MemberContracts[memberID] = expected
		report.MemberBalances[memberID] = balance
		report.MemberBalanceLabels[memberID] = duration.FormatSigned(balance)
	}

	report.AggregateBalance = SumWeeklyDifference(report.All)
	report.AggregateBalanceLabel = duration.FormatSigned(report.AggregateBalance)
	return report
}

// alignToWindow returns one bucket per window week carrying the member's
// minutes and entries for that week, zero when the member has none.
func alignToWindow(window, memberBuckets []Bucket) []Bucket {
	byKey := make(map[string]Bucket, len(memberBuckets))
	for _, bucket := range memberBuckets {
		byKey[bucket.Key] = bucket
	}

	aligned := make([]Bucket, len(window))
	for i, week := range window {
		bucket := week
		bucket.Minutes = 0
		bucket.Entries = 0
		bucket.Balance = nil
		if own, ok := byKey[week.Key]; ok {
			bucket.Minutes = own.Minutes
			bucket.Entries = own.Entries
		}
		aligned[i] = bucket
	}
	return aligned
}
