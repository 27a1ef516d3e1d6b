// Package wizard implements the three-step appointment booking state machine.
//
// A Machine owns one model.Wizard. Every operation is synchronous and either applies
// completely or leaves the state untouched. Transition guards are silent: Advance
// reports whether it moved instead of returning an error.
package wizard

import (
	"carepoint/internal/domains/appointment/model"
	"carepoint/shared/constant"
	"carepoint/shared/failure"
	"carepoint/shared/timezone"
	"carepoint/shared/validator"
	"errors"
	"slices"
	"strings"
	"time"
)

var (
	ErrUnknownField       = errors.New("unknown draft field")
	ErrFieldLocked        = errors.New("field is not editable on the current step")
	ErrUnknownSlot        = errors.New("time is not one of the offered slots")
	ErrNotReady           = errors.New("booking can only be submitted from the confirm step")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrFinalized          = errors.New("booking has already been submitted")
	ErrDateBeforeFloor    = errors.New("date must not be in the past")
)

type Machine struct {
	state *model.Wizard
}

// New starts a wizard on the personal info step. The date floor is fixed to the calendar day of today.
func New(today time.Time, slots []string) *Machine {
	return &Machine{
		state: &model.Wizard{
			Step:    model.StepPersonalInfo,
			MinDate: timezone.FormatDate(today),
			Slots:   slices.Clone(slots),
		},
	}
}

// Restore resumes a machine over previously saved state.
func Restore(state *model.Wizard) *Machine {
	return &Machine{state: state}
}

// Snapshot returns the state the machine operates on.
func (m *Machine) Snapshot() *model.Wizard {
	return m.state
}

func (m *Machine) State() string {
	switch {
	case m.state.Submitted:
		return model.StateSubmitted
	case m.state.Submitting:
		return model.StateSubmitting
	case m.state.Step == model.StepSchedule:
		return model.StateSchedule
	case m.state.Step == model.StepConfirm:
		return model.StateConfirm
	default:
		return model.StatePersonalInfo
	}
}

func (m *Machine) finalized() bool {
	return m.state.Submitting || m.state.Submitted
}

// SetField writes one draft field visible on the current step. The time field is set through SelectSlot.
func (m *Machine) SetField(field, value string) error {
	if m.finalized() {
		return ErrFinalized
	}

	target := m.fieldRef(field)
	if target == nil || field == model.FieldTime {
		return ErrUnknownField
	}

	if !slices.Contains(m.state.Step.Fields(), field) {
		return ErrFieldLocked
	}

	if field == model.FieldDate && value != constant.Empty {
		if err := validator.ValidateVar(value, "isodate"); err != nil {
			return err
		}
	}

	*target = value

	return nil
}

// SelectSlot replaces the selected time with slot.
func (m *Machine) SelectSlot(slot string) error {
	if m.finalized() {
		return ErrFinalized
	}

	if m.state.Step != model.StepSchedule {
		return ErrFieldLocked
	}

	if !slices.Contains(m.state.Slots, slot) {
		return ErrUnknownSlot
	}

	m.state.Draft.Time = slot

	return nil
}

func (m *Machine) CanAdvance() bool {
	if m.finalized() {
		return false
	}

	draft := m.state.Draft

	switch m.state.Step {
	case model.StepPersonalInfo:
		return filled(draft.Name) && filled(draft.Email) && filled(draft.Phone)
	case model.StepSchedule:
		return m.dateAllowed(draft.Date) && slices.Contains(m.state.Slots, draft.Time)
	default:
		return false
	}
}

// Advance moves to the next step when the current step's guard holds.
func (m *Machine) Advance() bool {
	if !m.CanAdvance() {
		return false
	}

	m.state.Step++

	return true
}

// Back returns to the previous step. It never touches the draft.
func (m *Machine) Back() bool {
	if m.finalized() || m.state.Step <= model.StepPersonalInfo {
		return false
	}

	m.state.Step--

	return true
}

// BeginSubmit validates the whole draft and enters the submitting state.
// The returned draft is a copy and is the request payload.
func (m *Machine) BeginSubmit() (model.Draft, error) {
	switch {
	case m.state.Submitted:
		return model.Draft{}, ErrFinalized
	case m.state.Submitting:
		return model.Draft{}, ErrSubmissionInFlight
	case m.state.Step != model.StepConfirm:
		return model.Draft{}, ErrNotReady
	}

	draft := m.state.Draft
	if err := validator.ValidateStruct(&draft); err != nil {
		return model.Draft{}, err
	}

	if !m.dateAllowed(draft.Date) {
		return model.Draft{}, ErrDateBeforeFloor
	}

	if !slices.Contains(m.state.Slots, draft.Time) {
		return model.Draft{}, ErrUnknownSlot
	}

	m.state.Submitting = true
	m.state.LastError = constant.Empty

	return draft, nil
}

// CompleteSubmit leaves the submitting state. A nil err confirms the booking; otherwise the
// wizard stays on the confirm step with the draft intact and the error surfaced.
func (m *Machine) CompleteSubmit(err error) {
	m.state.Submitting = false

	if err == nil {
		m.state.Submitted = true
		m.state.LastError = constant.Empty

		return
	}

	m.state.Step = model.StepConfirm
	m.state.LastError = failure.GetMessage(err, constant.MessageAppointmentUnreachable)
}

func (m *Machine) dateAllowed(date string) bool {
	day, err := timezone.ParseDate(date)
	if err != nil {
		return false
	}

	floor, err := timezone.ParseDate(m.state.MinDate)
	if err != nil {
		return false
	}

	return !day.Before(floor)
}

func (m *Machine) fieldRef(field string) *string {
	draft := &m.state.Draft

	switch field {
	case model.FieldName:
		return &draft.Name
	case model.FieldEmail:
		return &draft.Email
	case model.FieldPhone:
		return &draft.Phone
	case model.FieldDate:
		return &draft.Date
	case model.FieldTime:
		return &draft.Time
	case model.FieldMessage:
		return &draft.Message
	default:
		return nil
	}
}

func filled(value string) bool {
	return strings.TrimSpace(value) != constant.Empty
}
