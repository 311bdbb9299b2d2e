package view

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/markoswell/optivest/internal/api"
	"github.com/markoswell/optivest/internal/user"
)

func rosterOf(t *testing.T, m UsersModel, users ...*user.User) UsersModel {
	t.Helper()

	model, _ := m.Update(loadUsersMsg{users: users})

	return model.(UsersModel)
}

func TestUsersModel_StatusFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := NewUsersModel(user.NewService(api.NewMockDoer(ctrl)))

	active := &user.User{ID: uuid.New(), FirstName: "Ada", Status: user.StatusActive, CreatedAt: time.Now()}
	suspended := &user.User{ID: uuid.New(), FirstName: "Bola", Status: user.StatusSuspended, CreatedAt: time.Now()}
	m = rosterOf(t, m, active, suspended)

	require.Len(t, m.visible, 2)

	// Cycle: all, pending, active.
	for i := 0; i < 2; i++ {
		model, _ := m.Update(keyPress("s"))
		m = model.(UsersModel)
	}

	require.Len(t, m.visible, 1)
	assert.Equal(t, "Ada", m.visible[0].FirstName)
}

func TestUsersModel_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := NewUsersModel(user.NewService(api.NewMockDoer(ctrl)))

	ada := &user.User{ID: uuid.New(), FirstName: "Ada", Email: "ada@example.com", Status: user.StatusActive, CreatedAt: time.Now()}
	bola := &user.User{ID: uuid.New(), FirstName: "Bola", Email: "bola@example.com", Status: user.StatusActive, CreatedAt: time.Now()}
	m = rosterOf(t, m, ada, bola)

	model, _ := m.Update(keyPress("/"))
	m = model.(UsersModel)
	require.Equal(t, usersStateSearch, m.state)

	model, _ = m.Update(keyPress("bola"))
	m = model.(UsersModel)

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(UsersModel)

	require.Len(t, m.visible, 1)
	assert.Equal(t, "Bola", m.visible[0].FirstName)

	// Esc clears the term and restores the full roster.
	model, _ = m.Update(keyPress("/"))
	m = model.(UsersModel)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(UsersModel)

	assert.Len(t, m.visible, 2)
}

func TestUsersModel_Deactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	doer := api.NewMockDoer(ctrl)
	m := NewUsersModel(user.NewService(doer))

	target := &user.User{ID: uuid.New(), FirstName: "Ada", Status: user.StatusActive, CreatedAt: time.Now()}
	m = rosterOf(t, m, target)

	payload := fmt.Sprintf(`{"user": {"id": %q, "firstName": "Ada", "status": "deactivated"}}`, target.ID)
	doer.EXPECT().
		Patch(gomock.Any(), fmt.Sprintf("/api/v1/users/%s/status", target.ID), map[string]user.Status{"status": user.StatusInactive}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ any, out any) error {
			return json.Unmarshal([]byte(payload), out)
		})

	model, cmd := m.Update(keyPress("d"))
	m = model.(UsersModel)
	require.NotNil(t, cmd)
	require.True(t, m.busy)

	// A second status change while one is in flight does nothing.
	model, second := m.Update(keyPress("a"))
	m = model.(UsersModel)
	assert.Nil(t, second)

	model, _ = m.Update(cmd())
	m = model.(UsersModel)

	assert.False(t, m.busy)
	assert.Equal(t, user.StatusInactive, m.users[0].Status)
}
