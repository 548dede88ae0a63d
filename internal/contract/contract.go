// Package contract derives a member's expected weekly work minutes from the
// weekly schedule declared in their profile.
package contract

import (
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"worklog/internal/domain"
	"worklog/internal/duration"
)

// Slot is one working period of the weekly schedule.
type Slot struct {
	Start        string      `json:"start"`
	End          string      `json:"end"`
	BreakMinutes flexMinutes `json:"break_minutes"`
}

// Schedule is the ordered list of slots making up a week.
type Schedule []Slot

// MemberContract pairs a member with their expected weekly minutes.
type MemberContract struct {
	MemberID      int64
	WeeklyMinutes int
}

// flexMinutes accepts break durations written as a number or a numeric string.
// Anything else decodes to zero.
type flexMinutes int

func (f *flexMinutes) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) {
		*f = 0
		return nil
	}
	// Clamp before converting: out of range float to int conversions are
	// implementation defined.
	*f = flexMinutes(math.Max(math.MinInt32, math.Min(math.MaxInt32, n)))
	return nil
}

// ParseSchedule decodes a JSON list of slots. It reports false when the input
// is not JSON or not a list.
func ParseSchedule(raw []byte) (Schedule, bool) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, false
	}
	var schedule Schedule
	if err := sonic.Unmarshal(raw, &schedule); err != nil {
		return nil, false
	}
	return schedule, true
}

// SlotMinutes returns the net minutes of one slot: the gross range minus the
// break, where the break is clamped to [0, gross].
func SlotMinutes(slot Slot) int {
	if strings.TrimSpace(slot.Start) == "" || strings.TrimSpace(slot.End) == "" {
		return 0
	}
	gross := duration.MinutesFromRange(slot.Start, slot.End)
	if gross <= 0 {
		return 0
	}
	pause := int(slot.BreakMinutes)
	if pause < 0 {
		pause = 0
	}
	if pause > gross {
		pause = gross
	}
	return gross - pause
}

// WeeklyMinutes sums the net minutes of every slot.
func WeeklyMinutes(schedule Schedule) int {
	total := 0
	for _, slot := range schedule {
		total += SlotMinutes(slot)
	}
	return total
}

// ResolveWeeklyMinutes parses a raw schedule and returns the weekly contract
// minutes. A malformed schedule yields 0.
func ResolveWeeklyMinutes(raw []byte) int {
	schedule, ok := ParseSchedule(raw)
	if !ok {
		return 0
	}
	return WeeklyMinutes(schedule)
}

// Resolve returns the contract of a single member.
func Resolve(member domain.Member) MemberContract {
	if member.ID <= 0 {
		return MemberContract{MemberID: member.ID}
	}
	return MemberContract{
		MemberID:      member.ID,
		WeeklyMinutes: ResolveWeeklyMinutes(member.WeeklySchedule),
	}
}

// ResolveMembers maps member ids to weekly contract minutes. Members without a
// positive id are skipped.
func ResolveMembers(members []domain.Member) map[int64]int {
	contracts := make(map[int64]int, len(members))
	for _, member := range members {
		if member.ID <= 0 {
			continue
		}
		contracts[member.ID] = Resolve(member).WeeklyMinutes
	}
	return contracts
}
