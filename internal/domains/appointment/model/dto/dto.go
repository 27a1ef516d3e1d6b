package dto

import (
	"carepoint/internal/domains/appointment/model"
	"carepoint/internal/domains/appointment/wizard"
	"fmt"
)

type StartRequest struct {
	Timezone string `json:"timezone" validate:"omitempty,timezone"`
}

type StartResponse struct {
	Token     string         `json:"token"`
	ExpiresIn int64          `json:"expires_in"`
	Wizard    WizardResponse `json:"wizard"`
}

// UpdateDraftRequest carries the fields to change; absent fields are left as they are.
type UpdateDraftRequest struct {
	Name    *string `json:"name"    validate:"omitempty,max=100"`
	Email   *string `json:"email"   validate:"omitempty,max=100"`
	Phone   *string `json:"phone"   validate:"omitempty,max=20"`
	Date    *string `json:"date"    validate:"omitempty"`
	Message *string `json:"message" validate:"omitempty,max=2000"`
}

// Changes lists the requested edits in draft field order.
func (r *UpdateDraftRequest) Changes() []FieldChange {
	var changes []FieldChange

	for _, c := range []struct {
		field string
		value *string
	}{
		{model.FieldName, r.Name},
		{model.FieldEmail, r.Email},
		{model.FieldPhone, r.Phone},
		{model.FieldDate, r.Date},
		{model.FieldMessage, r.Message},
	} {
		if c.value != nil {
			changes = append(changes, FieldChange{Field: c.field, Value: *c.value})
		}
	}

	return changes
}

type FieldChange struct {
	Field string
	Value string
}

type SelectSlotRequest struct {
	Time string `json:"time" validate:"required,slottime"`
}

type SlotsResponse struct {
	Slots   []string `json:"slots"`
	MinDate string   `json:"min_date"`
}

type ConfirmationResponse struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

type WizardResponse struct {
	State        string                `json:"state"`
	Step         int                   `json:"step"`
	StepName     string                `json:"step_name"`
	Submitting   bool                  `json:"submitting"`
	Submitted    bool                  `json:"submitted"`
	CanAdvance   bool                  `json:"can_advance"`
	MinDate      string                `json:"min_date"`
	Slots        []string              `json:"slots"`
	Draft        model.Draft           `json:"draft"`
	Error        string                `json:"error,omitempty"`
	Confirmation *ConfirmationResponse `json:"confirmation,omitempty"`
}

func (r *WizardResponse) FromMachine(m *wizard.Machine) {
	state := m.Snapshot()

	r.State = m.State()
	r.Step = int(state.Step)
	r.StepName = state.Step.String()
	r.Submitting = state.Submitting
	r.Submitted = state.Submitted
	r.CanAdvance = m.CanAdvance()
	r.MinDate = state.MinDate
	r.Slots = state.Slots
	r.Draft = state.Draft
	r.Error = state.LastError
	r.Confirmation = nil

	if state.Submitted {
		r.Confirmation = &ConfirmationResponse{
			Date: state.Draft.Date,
			Time: state.Draft.Time,
			Message: fmt.Sprintf("Your request for %s at %s has been received. Check your email for details.",
				state.Draft.Date, state.Draft.Time),
		}
	}
}
