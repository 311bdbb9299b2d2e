// Package wizard drives the multi-step flows used for deposits,
// withdrawals, and investment selection. The machine is independent of
// any UI: views render its state and feed it transitions.
package wizard

import (
	"context"
	"errors"
)

// StepKind determines which transitions a step accepts.
type StepKind int

const (
	// StepChoice advances by selecting one option from a list.
	StepChoice StepKind = iota
	// StepForm collects values and submits them.
	StepForm
	// StepDone is the terminal success screen.
	StepDone
)

// Step is one screen of a flow.
type Step struct {
	Key   string
	Title string
	Kind  StepKind
}

// Result records the outcome of the most recent submission attempt.
type Result int

const (
	ResultNone Result = iota
	ResultSuccess
	ResultError
	ResultInvalid
)

// Values are the form inputs handed to Submit.
type Values map[string]string

// ValidateFunc checks form values against the selections made so far.
// A non-nil error blocks submission before any network call.
type ValidateFunc func(selections map[string]any, values Values) error

// SubmitFunc performs the flow's single create request. It is called
// at most once per successful Submit transition.
type SubmitFunc func(ctx context.Context, selections map[string]any, values Values) error

// Flow describes a wizard: its ordered steps, the validation gate, and
// the submission action.
type Flow struct {
	Steps    []Step
	Validate ValidateFunc
	Submit   SubmitFunc
}

var (
	ErrNotChoiceStep = errors.New("wizard: current step does not take a selection")
	ErrNotFormStep   = errors.New("wizard: current step does not take a submission")
	ErrCannotGoBack  = errors.New("wizard: cannot go back from this step")
	ErrCannotReset   = errors.New("wizard: reset is only valid from the final step")
)

// Machine is the state of one wizard instance. It is not safe for
// concurrent use: callers must serialize transitions, which the views
// do by blocking all input while a submission is in flight.
type Machine struct {
	flow       Flow
	current    int
	selections map[string]any
	result     Result
	message    string
}

func NewMachine(flow Flow) *Machine {
	return &Machine{
		flow:       flow,
		selections: make(map[string]any),
	}
}

// Step returns the 1-based number of the current step.
func (m *Machine) Step() int {
	return m.current + 1
}

// Steps returns the total number of steps.
func (m *Machine) Steps() int {
	return len(m.flow.Steps)
}

// Current returns the current step definition.
func (m *Machine) Current() Step {
	return m.flow.Steps[m.current]
}

// Selection returns the value chosen on the step with the given key.
func (m *Machine) Selection(key string) (any, bool) {
	v, ok := m.selections[key]

	return v, ok
}

// Result reports the outcome of the last submission attempt.
func (m *Machine) Result() Result {
	return m.result
}

// Message returns the error message from the last failed submission.
func (m *Machine) Message() string {
	return m.message
}

// Select stores value under the current choice step's key and advances
// to the next step. Making a choice is itself the validation.
func (m *Machine) Select(value any) error {
	step := m.Current()
	if step.Kind != StepChoice {
		return ErrNotChoiceStep
	}

	m.selections[step.Key] = value
	m.current++

	return nil
}

// Submit validates values, and only if they pass issues the flow's
// create request. On success the machine advances to the terminal
// step. On failure the step is unchanged and the message records the
// reason so the user can correct and resubmit.
func (m *Machine) Submit(ctx context.Context, values Values) error {
	step := m.Current()
	if step.Kind != StepForm {
		return ErrNotFormStep
	}

	if err := m.flow.Validate(m.selections, values); err != nil {
		m.result = ResultInvalid
		m.message = err.Error()

		return err
	}

	if err := m.flow.Submit(ctx, m.selections, values); err != nil {
		m.result = ResultError
		m.message = err.Error()

		return err
	}

	m.result = ResultSuccess
	m.message = ""
	m.current++

	return nil
}

// Back moves to the previous step. Selections made earlier are kept so
// re-entering a step shows the prior choice.
func (m *Machine) Back() error {
	if m.current == 0 || m.Current().Kind == StepDone {
		return ErrCannotGoBack
	}

	m.current--

	return nil
}

// Reset clears all selections and returns to the first step. It is
// only valid from the terminal step, after a successful submission.
func (m *Machine) Reset() error {
	if m.Current().Kind != StepDone {
		return ErrCannotReset
	}

	m.current = 0
	m.selections = make(map[string]any)
	m.result = ResultNone
	m.message = ""

	return nil
}
