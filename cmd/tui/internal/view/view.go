package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markoswell/optivest/internal/user"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// LoggedInMsg is emitted by the login view after the platform accepts
// the credentials.
type LoggedInMsg struct {
	User  *user.User
	Token string
}

// ProfileUpdatedMsg is emitted after the platform accepts a profile
// change, so the root model can re-save the session with the fresh
// user record.
type ProfileUpdatedMsg struct {
	User *user.User
}

// LogoutMsg asks the root model to discard the session.
type LogoutMsg struct{}
