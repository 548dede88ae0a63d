package report

import (
	"fmt"
	"time"

	"worklog/internal/domain"
)

var monthNames = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var monthShortNames = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// indexed by time.Weekday
var weekdayShortNames = [...]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."}

func monthName(m time.Month) string {
	return monthNames[m-1]
}

func monthShortName(m time.Month) string {
	return monthShortNames[m-1]
}

// MonthLabel renders "février 2025".
func MonthLabel(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d", monthName(d.Month()), d.Year())
}

// monthShortLabel renders "févr. 25".
func monthShortLabel(d domain.Date) string {
	return fmt.Sprintf("%s %02d", monthShortName(d.Month()), d.Year()%100)
}

// weekLabel renders "Semaine 02 · 2025 (6 janv. au 12 janv.)".
func weekLabel(isoYear, isoWeek int, start, end domain.Date) string {
	return fmt.Sprintf("Semaine %02d · %d (%s au %s)", isoWeek, isoYear, dayLabel(start), dayLabel(end))
}

func weekShortLabel(isoWeek int) string {
	return fmt.Sprintf("S%02d", isoWeek)
}

func dayLabel(d domain.Date) string {
	return fmt.Sprintf("%d %s", d.Day(), monthShortName(d.Month()))
}

// WeekdayHeaders returns the seven short weekday names starting at startOfWeek.
func WeekdayHeaders(startOfWeek int) []string {
	startOfWeek = normalizeStartOfWeek(startOfWeek)
	headers := make([]string, 7)
	for i := range headers {
		headers[i] = weekdayShortNames[(startOfWeek+i)%7]
	}
	return headers
}
