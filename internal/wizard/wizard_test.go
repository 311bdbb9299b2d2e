package wizard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markoswell/optivest/internal/wizard"
)

var errAmountRequired = errors.New("amount is required")

// fourStepFlow mirrors the deposit/withdrawal shape: two choices, one
// form, one terminal step.
func fourStepFlow(submitErr error, calls *int) wizard.Flow {
	return wizard.Flow{
		Steps: []wizard.Step{
			{Key: "type", Title: "Select Type", Kind: wizard.StepChoice},
			{Key: "method", Title: "Choose Method", Kind: wizard.StepChoice},
			{Key: "details", Title: "Details", Kind: wizard.StepForm},
			{Key: "done", Title: "Done", Kind: wizard.StepDone},
		},
		Validate: func(_ map[string]any, values wizard.Values) error {
			if values["amount"] == "" {
				return errAmountRequired
			}

			return nil
		},
		Submit: func(_ context.Context, _ map[string]any, _ wizard.Values) error {
			*calls++

			return submitErr
		},
	}
}

func TestMachine_HappyPath(t *testing.T) {
	var calls int

	m := wizard.NewMachine(fourStepFlow(nil, &calls))

	require.Equal(t, 1, m.Step())
	require.NoError(t, m.Select("investment deposit"))
	require.Equal(t, 2, m.Step())
	require.NoError(t, m.Select("bank"))
	require.Equal(t, 3, m.Step())

	err := m.Submit(context.Background(), wizard.Values{"amount": "500", "receipt": "proof.png"})
	require.NoError(t, err)

	assert.Equal(t, 4, m.Step())
	assert.Equal(t, wizard.ResultSuccess, m.Result())
	assert.Equal(t, 1, calls)

	chosen, ok := m.Selection("type")
	require.True(t, ok)
	assert.Equal(t, "investment deposit", chosen)
}

func TestMachine_SelectOnlyOnChoiceSteps(t *testing.T) {
	var calls int

	m := wizard.NewMachine(fourStepFlow(nil, &calls))
	require.NoError(t, m.Select("a"))
	require.NoError(t, m.Select("b"))

	err := m.Select("c")

	assert.ErrorIs(t, err, wizard.ErrNotChoiceStep)
	assert.Equal(t, 3, m.Step())
}

func TestMachine_SubmitOnlyOnFormStep(t *testing.T) {
	var calls int

	m := wizard.NewMachine(fourStepFlow(nil, &calls))

	err := m.Submit(context.Background(), wizard.Values{"amount": "500"})

	assert.ErrorIs(t, err, wizard.ErrNotFormStep)
	assert.Equal(t, 1, m.Step())
	assert.Zero(t, calls, "no network call on an invalid transition")
}

func TestMachine_ValidationFailureMakesNoCall(t *testing.T) {
	var calls int

	m := wizard.NewMachine(fourStepFlow(nil, &calls))
	require.NoError(t, m.Select("a"))
	require.NoError(t, m.Select("b"))

	err := m.Submit(context.Background(), wizard.Values{})

	assert.ErrorIs(t, err, errAmountRequired)
	assert.Equal(t, 3, m.Step(), "failed validation leaves the step unchanged")
	assert.Equal(t, wizard.ResultInvalid, m.Result())
	assert.Equal(t, errAmountRequired.Error(), m.Message())
	assert.Zero(t, calls)

	// Correcting the input clears the recorded failure.
	require.NoError(t, m.Submit(context.Background(), wizard.Values{"amount": "500"}))
	assert.Equal(t, wizard.ResultSuccess, m.Result())
	assert.Empty(t, m.Message())
}

func TestMachine_ServerFailureStaysOnFormStep(t *testing.T) {
	var calls int

	serverErr := errors.New("insufficient funds")
	m := wizard.NewMachine(fourStepFlow(serverErr, &calls))
	require.NoError(t, m.Select("a"))
	require.NoError(t, m.Select("b"))

	err := m.Submit(context.Background(), wizard.Values{"amount": "500"})

	assert.ErrorIs(t, err, serverErr)
	assert.Equal(t, 3, m.Step())
	assert.Equal(t, wizard.ResultError, m.Result())
	assert.Equal(t, "insufficient funds", m.Message())
	assert.Equal(t, 1, calls)
}

func TestMachine_ResubmitAfterServerFailure(t *testing.T) {
	var calls int

	failing := errors.New("boom")
	flow := fourStepFlow(nil, &calls)
	flow.Submit = func(_ context.Context, _ map[string]any, _ wizard.Values) error {
		calls++
		if calls == 1 {
			return failing
		}

		return nil
	}

	m := wizard.NewMachine(flow)
	require.NoError(t, m.Select("a"))
	require.NoError(t, m.Select("b"))

	require.Error(t, m.Submit(context.Background(), wizard.Values{"amount": "500"}))
	require.NoError(t, m.Submit(context.Background(), wizard.Values{"amount": "500"}))

	assert.Equal(t, 4, m.Step())
	assert.Equal(t, wizard.ResultSuccess, m.Result())
	assert.Empty(t, m.Message())
	assert.Equal(t, 2, calls)
}

func TestMachine_BackKeepsSelections(t *testing.T) {
	var calls int

	m := wizard.NewMachine(fourStepFlow(nil, &calls))
	require.NoError(t, m.Select("investment deposit"))
	require.NoError(t, m.Select("bank"))

	require.NoError(t, m.Back())
	assert.Equal(t, 2, m.Step())

	chosen, ok := m.Selection("method")
	require.True(t, ok, "re-entering a step shows the prior choice")
	assert.Equal(t, "bank", chosen)
}

func TestMachine_ForwardOnly(t *testing.T) {
	var calls int

	m := wizard.NewMachine(fourStepFlow(nil, &calls))
	require.NoError(t, m.Select("a"))
	require.NoError(t, m.Select("b"))
	require.Equal(t, 3, m.Step())

	// Back then Select never skips past the step sequence.
	require.NoError(t, m.Back())
	require.NoError(t, m.Select("b2"))

	assert.Equal(t, 3, m.Step())
}

func TestMachine_BackInvalidFromEnds(t *testing.T) {
	var calls int

	m := wizard.NewMachine(fourStepFlow(nil, &calls))
	assert.ErrorIs(t, m.Back(), wizard.ErrCannotGoBack)

	require.NoError(t, m.Select("a"))
	require.NoError(t, m.Select("b"))
	require.NoError(t, m.Submit(context.Background(), wizard.Values{"amount": "1"}))
	require.Equal(t, 4, m.Step())

	assert.ErrorIs(t, m.Back(), wizard.ErrCannotGoBack)
}

func TestMachine_Reset(t *testing.T) {
	var calls int

	m := wizard.NewMachine(fourStepFlow(nil, &calls))

	assert.ErrorIs(t, m.Reset(), wizard.ErrCannotReset, "reset is invalid before the terminal step")

	require.NoError(t, m.Select("a"))
	require.NoError(t, m.Select("b"))
	require.NoError(t, m.Submit(context.Background(), wizard.Values{"amount": "1"}))

	require.NoError(t, m.Reset())

	assert.Equal(t, 1, m.Step())
	assert.Equal(t, wizard.ResultNone, m.Result())

	_, ok := m.Selection("type")
	assert.False(t, ok, "reset clears all selections")
}
