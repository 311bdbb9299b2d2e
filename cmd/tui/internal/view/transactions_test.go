package view

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/markoswell/optivest/internal/api"
	"github.com/markoswell/optivest/internal/transaction"
)

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTransactionsModel_OneActionAtATime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: the action command is never executed here.
	m := NewTransactionsModel(transaction.NewService(api.NewMockDoer(ctrl)), true)

	pending := &transaction.Transaction{
		ID:        uuid.New(),
		Reference: "TX-1",
		Status:    transaction.StatusPending,
	}

	model, _ := m.Update(loadTxsMsg{txs: []*transaction.Transaction{pending}})
	m = model.(TransactionsModel)

	model, cmd := m.Update(keyPress("a"))
	m = model.(TransactionsModel)
	require.NotNil(t, cmd)
	require.True(t, m.busy)

	// Repeated presses while the first request is in flight do nothing.
	model, cmd = m.Update(keyPress("a"))
	m = model.(TransactionsModel)
	assert.Nil(t, cmd)

	model, cmd = m.Update(keyPress("x"))
	m = model.(TransactionsModel)
	assert.Nil(t, cmd)

	approved := &transaction.Transaction{ID: pending.ID, Reference: "TX-1", Status: transaction.StatusSuccess}
	model, _ = m.Update(txActionMsg{tx: approved})
	m = model.(TransactionsModel)

	assert.False(t, m.busy)
	assert.Equal(t, transaction.StatusSuccess, m.txs[0].Status)
}
