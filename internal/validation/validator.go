package validation

import (
	"regexp"
	"strings"
	"time"

	"worklog/internal/config"
	"worklog/internal/domain"
	"worklog/internal/duration"
)

const (
	minYear = 1970
	maxYear = 2100

	defaultLabelMaxLength = 255
)

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validator provides the checks shared by the entity validators.
type Validator struct {
	config *config.Config
}

func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig reads length and duration limits from cfg.
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength counts runes of the trimmed string.
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len([]rune(strings.TrimSpace(s)))
	return length >= min && length <= max
}

func (v *Validator) IsValidTaskLabelLength(label string) bool {
	return v.IsValidStringLength(label, 1, v.getTaskLabelMaxLength())
}

func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidClock reports whether value is a time of day duration.ParseClock accepts.
func (v *Validator) IsValidClock(value string) bool {
	_, ok := duration.ParseClock(value)
	return ok
}

// IsValidTimeRange reports whether end is strictly after start.
func (v *Validator) IsValidTimeRange(start, end string) bool {
	from, ok := duration.ParseClock(start)
	if !ok {
		return false
	}
	to, ok := duration.ParseClock(end)
	if !ok {
		return false
	}
	return to > from
}

// IsValidDurationMinutes accepts 1 minute up to the configured maximum.
func (v *Validator) IsValidDurationMinutes(minutes int) bool {
	return minutes >= 1 && time.Duration(minutes)*time.Minute <= v.getMaxDuration()
}

// IsReasonableDate accepts dates from 1970 through 2100.
func (v *Validator) IsReasonableDate(d domain.Date) bool {
	if d.IsZero() {
		return false
	}
	return d.Year() >= minYear && d.Year() <= maxYear
}

// IsValidDateRange accepts open ranges and from <= to.
func (v *Validator) IsValidDateRange(from, to *domain.Date) bool {
	if from == nil || to == nil || from.IsZero() || to.IsZero() {
		return true
	}
	return !from.After(*to)
}

// IsValidColor accepts an empty color or a #rgb / #rrggbb hex value.
func (v *Validator) IsValidColor(color string) bool {
	return color == "" || colorPattern.MatchString(color)
}

func (v *Validator) getTaskLabelMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TaskLabelMaxLength
	}
	return defaultLabelMaxLength
}

func (v *Validator) getMaxDuration() time.Duration {
	if v.config != nil {
		return v.config.Validation.MaxDuration
	}
	return 24 * time.Hour
}
