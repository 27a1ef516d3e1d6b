package model

const (
	EntityName = "appointment"

	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldDate    = "date"
	FieldTime    = "time"
	FieldMessage = "message"
)

// Step is the stage of the booking wizard the visitor is on.
type Step int

const (
	StepPersonalInfo Step = iota + 1
	StepSchedule
	StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Information"
	case StepSchedule:
		return "Pick a Schedule"
	case StepConfirm:
		return "Final Notes"
	default:
		return "Unknown"
	}
}

// Fields lists the draft fields shown on the step.
func (s Step) Fields() []string {
	switch s {
	case StepPersonalInfo:
		return []string{FieldName, FieldEmail, FieldPhone}
	case StepSchedule:
		return []string{FieldDate, FieldTime}
	case StepConfirm:
		return []string{FieldMessage}
	default:
		return nil
	}
}

// State names, derived from Step and the submission flags.
const (
	StatePersonalInfo = "personal_info"
	StateSchedule     = "schedule"
	StateConfirm      = "confirm"
	StateSubmitting   = "submitting"
	StateSubmitted    = "submitted"
)

// Draft is the in-progress booking. Its JSON shape is the payload sent to the hospital API.
type Draft struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email,max=100"`
	Phone   string `json:"phone"   validate:"required,max=20"`
	Date    string `json:"date"    validate:"required,isodate"`
	Time    string `json:"time"    validate:"required,slottime"`
	Message string `json:"message" validate:"omitempty,max=2000"`
}

// Wizard is the state of one booking session.
type Wizard struct {
	Step       Step     `json:"step"`
	Submitting bool     `json:"submitting"`
	Submitted  bool     `json:"submitted"`
	Draft      Draft    `json:"draft"`
	MinDate    string   `json:"min_date"`
	Slots      []string `json:"slots"`
	LastError  string   `json:"last_error,omitempty"`
}
