package view

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/markoswell/optivest/internal/api"
	"github.com/markoswell/optivest/internal/user"
)

func TestProfileModel_SaveNotifiesRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := NewProfileModel(user.NewService(api.NewMockDoer(ctrl)))

	me := &user.User{ID: uuid.New(), FirstName: "Ada"}
	model, cmd := m.Update(profileSavedMsg{me: me, note: "Profile updated."})
	m = model.(ProfileModel)

	require.NotNil(t, cmd, "a saved profile must reach the session store")

	msg, ok := cmd().(ProfileUpdatedMsg)
	require.True(t, ok)
	assert.Same(t, me, msg.User)
	assert.Same(t, me, m.me)
}

func TestProfileModel_PasswordChangeStaysLocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := NewProfileModel(user.NewService(api.NewMockDoer(ctrl)))

	model, cmd := m.Update(profileSavedMsg{note: "Password changed."})
	m = model.(ProfileModel)

	assert.Nil(t, cmd, "no user record changed, nothing to persist")
	assert.Equal(t, "Password changed.", m.status)
}
