package validation

import (
	"fmt"

	"worklog/internal/contract"
	"worklog/internal/domain"
)

// MemberValidator checks member profiles and their weekly schedules.
type MemberValidator struct {
	validator *Validator
}

func NewMemberValidator() *MemberValidator {
	return &MemberValidator{validator: NewValidator()}
}

func (mv *MemberValidator) ValidateMemberID(id int64) error {
	validationError := NewValidationError()
	if !mv.validator.IsValidID(id) {
		validationError.AddInvalidValueError("member_id", id, "must be a positive integer")
	}
	return validationError.ErrOrNil()
}

// ValidateMember checks the id, the name length and, when present, the schedule.
func (mv *MemberValidator) ValidateMember(member domain.Member) error {
	validationError := NewValidationError()

	validationError.merge(mv.ValidateMemberID(member.ID))
	if !mv.validator.IsValidStringLength(member.DisplayName, 0, defaultLabelMaxLength) {
		validationError.AddInvalidLengthError("display_name", member.DisplayName, 0, defaultLabelMaxLength)
	}
	if len(member.WeeklySchedule) > 0 {
		validationError.merge(mv.ValidateSchedule(member.WeeklySchedule))
	}

	return validationError.ErrOrNil()
}

// ValidateSchedule requires a JSON list of slots whose times parse and whose
// end is after their start. The reporting engine tolerates anything, so this
// only guards what is written.
func (mv *MemberValidator) ValidateSchedule(raw []byte) error {
	validationError := NewValidationError()

	schedule, ok := contract.ParseSchedule(raw)
	if !ok {
		validationError.AddInvalidFormatError("weekly_schedule", string(raw), `[{"start":"09:00","end":"17:00","break_minutes":60}]`)
		return validationError
	}

	for i, slot := range schedule {
		field := fmt.Sprintf("weekly_schedule[%d]", i)
		if !mv.validator.IsValidClock(slot.Start) {
			validationError.AddInvalidFormatError(field+".start", slot.Start, "HH:MM")
			continue
		}
		if !mv.validator.IsValidClock(slot.End) {
			validationError.AddInvalidFormatError(field+".end", slot.End, "HH:MM")
			continue
		}
		if !mv.validator.IsValidTimeRange(slot.Start, slot.End) {
			validationError.AddInvalidRangeError(field, map[string]string{"start": slot.Start, "end": slot.End}, "end time must be after start time")
		}
	}

	return validationError.ErrOrNil()
}
