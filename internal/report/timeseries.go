package report

import (
	"fmt"
	"sort"
	"time"

	"worklog/internal/domain"
)

// DefaultSeriesLimit is the number of most recent periods kept when no limit is given.
const DefaultSeriesLimit = 12

// Bucket is the aggregate of one period, a calendar month or an ISO week.
type Bucket struct {
	Key         string      `json:"key"`               // YYYY-MM-01 for months, YYYY-Www for weeks
	Label       string      `json:"label"`
	ShortLabel  string      `json:"short_label"`
	PeriodStart domain.Date `json:"period_start"`
	PeriodEnd   domain.Date `json:"period_end"`
	Minutes     int         `json:"minutes"`
	Entries     int         `json:"entries"`
	Balance     *Balance    `json:"balance,omitempty"` // set on weekly buckets by the balance calculator
}

// Series is an aggregate series plus one series per member.
type Series struct {
	All      []Bucket           `json:"all"`
	ByMember map[int64][]Bucket `json:"by_member"`
}

// Members returns the member ids of the series in ascending order.
func (s Series) Members() []int64 {
	ids := make([]int64, 0, len(s.ByMember))
	for id := range s.ByMember {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// periodFunc maps an activity date to its bucket key and bounds.
type periodFunc func(d domain.Date) Bucket

// BuildMonthlySeries groups entries by calendar month and keeps the most recent
// limit months, in chronological order.
func BuildMonthlySeries(entries []domain.TimeEntry, limit int) Series {
	return buildSeries(entries, limit, monthBucket)
}

// BuildWeeklySeries groups entries by ISO week and keeps the most recent limit
// weeks, in chronological order.
func BuildWeeklySeries(entries []domain.TimeEntry, limit int) Series {
	return buildSeries(entries, limit, weekBucket)
}

func buildSeries(entries []domain.TimeEntry, limit int, period periodFunc) Series {
	all := make(map[string]*Bucket)
	byMember := make(map[int64]map[string]*Bucket)

	for _, entry := range entries {
		if entry.ActivityDate.IsZero() || entry.DurationMinutes <= 0 {
			continue
		}
		template := period(entry.ActivityDate)

		accumulate(all, template, entry.DurationMinutes)

		memberBuckets, ok := byMember[entry.MemberID]
		if !ok {
			memberBuckets = make(map[string]*Bucket)
			byMember[entry.MemberID] = memberBuckets
		}
		accumulate(memberBuckets, template, entry.DurationMinutes)
	}

	series := Series{
		All:      TrimRecent(sortedBuckets(all), limit),
		ByMember: make(map[int64][]Bucket, len(byMember)),
	}
	for memberID, buckets := range byMember {
		series.ByMember[memberID] = TrimRecent(sortedBuckets(buckets), limit)
	}
	return series
}

func accumulate(buckets map[string]*Bucket, template Bucket, minutes int) {
	bucket, ok := buckets[template.Key]
	if !ok {
		b := template
		bucket = &b
		buckets[template.Key] = bucket
	}
	bucket.Minutes += minutes
	bucket.Entries++
}

func sortedBuckets(buckets map[string]*Bucket) []Bucket {
	out := make([]Bucket, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// TrimRecent keeps the last limit buckets of an ascending series. A limit of
// zero or less means DefaultSeriesLimit.
func TrimRecent(buckets []Bucket, limit int) []Bucket {
	if limit <= 0 {
		limit = DefaultSeriesLimit
	}
	if len(buckets) <= limit {
		return buckets
	}
	trimmed := make([]Bucket, limit)
	copy(trimmed, buckets[len(buckets)-limit:])
	return trimmed
}

func monthBucket(d domain.Date) Bucket {
	start := d.MonthStart()
	return Bucket{
		Key:         start.String(),
		Label:       MonthLabel(start),
		ShortLabel:  monthShortLabel(start),
		PeriodStart: start,
		PeriodEnd:   start.MonthEnd(),
	}
}

func weekBucket(d domain.Date) Bucket {
	isoYear, isoWeek := d.ISOWeek()
	isoWeek = clampWeek(isoWeek)
	start := ISOWeekStart(isoYear, isoWeek)
	end := start.AddDays(6)
	return Bucket{
		Key:         WeekKey(isoYear, isoWeek),
		Label:       weekLabel(isoYear, isoWeek, start, end),
		ShortLabel:  weekShortLabel(isoWeek),
		PeriodStart: start,
		PeriodEnd:   end,
	}
}

// WeekKey renders the sortable key of an ISO week, e.g. "2025-W02".
func WeekKey(isoYear, isoWeek int) string {
	return fmt.Sprintf("%04d-W%02d", isoYear, clampWeek(isoWeek))
}

// ISOWeekStart returns the Monday of the given ISO week.
func ISOWeekStart(isoYear, isoWeek int) domain.Date {
	// January 4th always falls in ISO week 1.
	jan4 := domain.NewDate(isoYear, time.January, 4)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDays(-offset + (clampWeek(isoWeek)-1)*7)
}

func clampWeek(week int) int {
	if week < 1 {
		return 1
	}
	if week > 53 {
		return 53
	}
	return week
}
