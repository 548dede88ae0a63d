// Package report turns time entries into aggregate structures: rollups,
// monthly and weekly series, contract balance and the month calendar.
//
// Every function is a pure computation over its arguments. Nothing reads the
// clock or shared state, so callers may run them concurrently as long as the
// input slices are not mutated during the call.
package report

import (
	"sort"

	"worklog/internal/domain"
)

// ProjectTotal aggregates entries of one project.
type ProjectTotal struct {
	Project domain.ProjectKey `json:"project"`
	Color   string            `json:"color"`
	Minutes int               `json:"minutes"`
	Entries int               `json:"entries"`
}

// MemberTotal aggregates entries of one member.
type MemberTotal struct {
	MemberID int64 `json:"member_id"`
	Minutes  int   `json:"minutes"`
	Entries  int   `json:"entries"`
}

// MemberProjectTotal aggregates entries of one member on one project.
type MemberProjectTotal struct {
	MemberID int64             `json:"member_id"`
	Project  domain.ProjectKey `json:"project"`
	Color    string            `json:"color"`
	Minutes  int               `json:"minutes"`
	Entries  int               `json:"entries"`
}

// Rollup holds the three groupings of a set of entries.
// Slices are in first-seen order; sorting is left to the caller.
type Rollup struct {
	Projects       []ProjectTotal       `json:"projects"`
	Members        []MemberTotal        `json:"members"`
	MemberProjects []MemberProjectTotal `json:"member_projects"`
	TotalMinutes   int                  `json:"total_minutes"`
	TotalEntries   int                  `json:"total_entries"`
}

type memberProjectKey struct {
	memberID int64
	project  domain.ProjectKey
}

// BuildRollup groups entries by project, by member and by (member, project).
// Entries without a positive duration are left out of every total.
func BuildRollup(entries []domain.TimeEntry) Rollup {
	rollup := Rollup{
		Projects:       []ProjectTotal{},
		Members:        []MemberTotal{},
		MemberProjects: []MemberProjectTotal{},
	}

	projectIndex := make(map[domain.ProjectKey]int)
	memberIndex := make(map[int64]int)
	pairIndex := make(map[memberProjectKey]int)

	for _, entry := range entries {
		if entry.DurationMinutes <= 0 {
			continue
		}
		minutes := entry.DurationMinutes
		project := entry.Project()

		i, ok := projectIndex[project]
		if !ok {
			i = len(rollup.Projects)
			projectIndex[project] = i
			rollup.Projects = append(rollup.Projects, ProjectTotal{Project: project})
		}
		rollup.Projects[i].Minutes += minutes
		rollup.Projects[i].Entries++
		if rollup.Projects[i].Color == "" {
			rollup.Projects[i].Color = entry.ProjectColor
		}

		j, ok := memberIndex[entry.MemberID]
		if !ok {
			j = len(rollup.Members)
			memberIndex[entry.MemberID] = j
			rollup.Members = append(rollup.Members, MemberTotal{MemberID: entry.MemberID})
		}
		rollup.Members[j].Minutes += minutes
		rollup.Members[j].Entries++

		pair := memberProjectKey{memberID: entry.MemberID, project: project}
		k, ok := pairIndex[pair]
		if !ok {
			k = len(rollup.MemberProjects)
			pairIndex[pair] = k
			rollup.MemberProjects = append(rollup.MemberProjects, MemberProjectTotal{
				MemberID: entry.MemberID,
				Project:  project,
			})
		}
		rollup.MemberProjects[k].Minutes += minutes
		rollup.MemberProjects[k].Entries++
		if rollup.MemberProjects[k].Color == "" {
			rollup.MemberProjects[k].Color = entry.ProjectColor
		}

		rollup.TotalMinutes += minutes
		rollup.TotalEntries++
	}

	return rollup
}

// SortProjectsByMinutes orders project totals by descending minutes, then by key.
func SortProjectsByMinutes(totals []ProjectTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Minutes != totals[j].Minutes {
			return totals[i].Minutes > totals[j].Minutes
		}
		return totals[i].Project.String() < totals[j].Project.String()
	})
}

// SortMembersByMinutes orders member totals by descending minutes, then by id.
func SortMembersByMinutes(totals []MemberTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Minutes != totals[j].Minutes {
			return totals[i].Minutes > totals[j].Minutes
		}
		return totals[i].MemberID < totals[j].MemberID
	})
}

// SortMemberProjectsByMinutes orders by member id, then descending minutes within a member.
func SortMemberProjectsByMinutes(totals []MemberProjectTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].MemberID != totals[j].MemberID {
			return totals[i].MemberID < totals[j].MemberID
		}
		if totals[i].Minutes != totals[j].Minutes {
			return totals[i].Minutes > totals[j].Minutes
		}
		return totals[i].Project.String() < totals[j].Project.String()
	})
}
