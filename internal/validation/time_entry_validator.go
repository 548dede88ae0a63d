package validation

import (
	"strings"

	"worklog/internal/config"
	"worklog/internal/domain"
)

// TimeEntryValidator checks entries before they are stored.
type TimeEntryValidator struct {
	validator *Validator
}

func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidator()}
}

func NewTimeEntryValidatorWithConfig(cfg *config.Config) *TimeEntryValidator {
	return &TimeEntryValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateTimeEntry validates an entry that has already been normalized.
// All failing fields are reported together.
func (tev *TimeEntryValidator) ValidateTimeEntry(entry domain.TimeEntry) error {
	v := tev.validator
	validationError := NewValidationError()

	if !v.IsValidID(entry.MemberID) {
		validationError.AddInvalidValueError("member_id", entry.MemberID, "must be a positive integer")
	}
	if entry.ProjectID < 0 {
		validationError.AddInvalidValueError("project_id", entry.ProjectID, "must not be negative")
	}
	if !v.IsValidStringLength(entry.ProjectLabel, 0, defaultLabelMaxLength) {
		validationError.AddInvalidLengthError("project_label", entry.ProjectLabel, 0, defaultLabelMaxLength)
	}
	if !v.IsValidColor(entry.ProjectColor) {
		validationError.AddInvalidFormatError("project_color", entry.ProjectColor, "#rgb or #rrggbb")
	}

	if !v.IsNonEmptyString(entry.TaskLabel) {
		validationError.AddRequiredError("task_label")
	} else if !v.IsValidTaskLabelLength(entry.TaskLabel) {
		validationError.AddInvalidLengthError("task_label", entry.TaskLabel, 1, v.getTaskLabelMaxLength())
	}

	if entry.ActivityDate.IsZero() {
		validationError.AddRequiredError("activity_date")
	} else if !v.IsReasonableDate(entry.ActivityDate) {
		validationError.AddInvalidValueError("activity_date", entry.ActivityDate.String(), "must be between 1970 and 2100")
	}

	tev.validateTimeRange(entry, validationError)

	if !v.IsValidDurationMinutes(entry.DurationMinutes) {
		validationError.AddInvalidValueError("duration_minutes", entry.DurationMinutes, "must be at least 1 minute and at most "+v.getMaxDuration().String())
	}

	return validationError.ErrOrNil()
}

func (tev *TimeEntryValidator) validateTimeRange(entry domain.TimeEntry, validationError *ValidationError) {
	v := tev.validator
	start := strings.TrimSpace(entry.StartTime)
	end := strings.TrimSpace(entry.EndTime)

	switch {
	case start == "" && end == "":
		return
	case start == "":
		validationError.AddRequiredError("start_time")
		return
	case end == "":
		validationError.AddRequiredError("end_time")
		return
	}

	formatOK := true
	if !v.IsValidClock(start) {
		validationError.AddInvalidFormatError("start_time", start, "HH:MM")
		formatOK = false
	}
	if !v.IsValidClock(end) {
		validationError.AddInvalidFormatError("end_time", end, "HH:MM")
		formatOK = false
	}
	if formatOK && !v.IsValidTimeRange(start, end) {
		validationError.AddInvalidRangeError("time_range", map[string]string{"start": start, "end": end}, "end time must be after start time")
	}
}

// ValidateSearchOptions checks ids and the date range of a query.
func (tev *TimeEntryValidator) ValidateSearchOptions(opts domain.SearchOptions) error {
	v := tev.validator
	validationError := NewValidationError()

	if opts.MemberID != nil && !v.IsValidID(*opts.MemberID) {
		validationError.AddInvalidValueError("member_id", *opts.MemberID, "must be a positive integer")
	}
	if opts.ProjectID != nil && *opts.ProjectID < 0 {
		validationError.AddInvalidValueError("project_id", *opts.ProjectID, "must not be negative")
	}
	if opts.From != nil && !opts.From.IsZero() && !v.IsReasonableDate(*opts.From) {
		validationError.AddInvalidValueError("from", opts.From.String(), "must be between 1970 and 2100")
	}
	if opts.To != nil && !opts.To.IsZero() && !v.IsReasonableDate(*opts.To) {
		validationError.AddInvalidValueError("to", opts.To.String(), "must be between 1970 and 2100")
	}
	if !v.IsValidDateRange(opts.From, opts.To) {
		validationError.AddInvalidRangeError("date_range", map[string]string{"from": opts.From.String(), "to": opts.To.String()}, "from must not be after to")
	}

	return validationError.ErrOrNil()
}

// ValidateEntryID rejects blank ids.
func (tev *TimeEntryValidator) ValidateEntryID(id string) error {
	validationError := NewValidationError()
	if !tev.validator.IsNonEmptyString(id) {
		validationError.AddRequiredError("id")
	}
	return validationError.ErrOrNil()
}
