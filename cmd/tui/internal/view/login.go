package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markoswell/optivest/internal/auth"
)

type loginMode int

const (
	loginModeSignIn loginMode = iota
	loginModeRegister
	loginModeForgot
	loginModeReset
)

type LoginModel struct {
	CommonModel
	authService *auth.Service

	mode    loginMode
	form    *huh.Form
	busy    bool
	status  string
	notice  string

	// Form bindings
	email     string
	password  string
	confirm   string
	firstName string
	lastName  string
	phone     string
	country   string
	referral  string
	token     string
}

func NewLoginModel(authSvc *auth.Service) LoginModel {
	m := LoginModel{authService: authSvc}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) Title() string { return "Sign In" }
func (m LoginModel) ShortHelp() string {
	return "ctrl+r: register | ctrl+f: forgot password | ctrl+c: quit"
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}

		switch msg.String() {
		case "ctrl+r":
			return m.switchMode(loginModeRegister)
		case "ctrl+f":
			return m.switchMode(loginModeForgot)
		case "esc":
			if m.mode != loginModeSignIn {
				return m.switchMode(loginModeSignIn)
			}
		}

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		creds := msg.creds

		return m, func() tea.Msg {
			return LoggedInMsg{User: creds.User, Token: creds.Token}
		}

	case forgotResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			m.mode = loginModeSignIn
		} else {
			m.notice = "Reset instructions sent. Enter the code from your inbox."
			m.mode = loginModeReset
		}

		m.form = m.buildForm()

		return m, m.form.Init()

	case resetResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.notice = "Password updated. Sign in with your new password."
			m.password = ""
			m.mode = loginModeSignIn
		}

		m.form = m.buildForm()

		return m, m.form.Init()
	}

	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.busy = true
	m.status = ""
	m.notice = ""

	switch m.mode {
	case loginModeRegister:
		return m, m.registerCmd()
	case loginModeForgot:
		return m, m.forgotCmd()
	case loginModeReset:
		return m, m.resetCmd()
	default:
		return m, m.loginCmd()
	}
}

func (m LoginModel) View() string {
	if m.busy {
		return lipgloss.NewStyle().Padding(2).Render("Contacting the platform...")
	}

	titles := map[loginMode]string{
		loginModeSignIn:   "Optivest | Sign In",
		loginModeRegister: "Optivest | Create Account",
		loginModeForgot:   "Optivest | Forgot Password",
		loginModeReset:    "Optivest | Reset Password",
	}

	content := titles[m.mode] + "\n\n" + m.form.View() + "\n" + faintStyle(m.ShortHelp())

	if m.notice != "" {
		content = activeStyle(m.notice) + "\n\n" + content
	}

	if m.status != "" {
		content = errorStyle(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m LoginModel) switchMode(mode loginMode) (tea.Model, tea.Cmd) {
	if m.mode == mode {
		return m, nil
	}

	m.mode = mode
	m.status = ""
	m.form = m.buildForm()

	return m, m.form.Init()
}

func (m *LoginModel) buildForm() *huh.Form {
	email := huh.NewInput().
		Key("email").
		Title("Email").
		Value(&m.email).
		Validate(func(s string) error {
			if !strings.Contains(s, "@") {
				return fmt.Errorf("enter a valid email address")
			}
			return nil
		})

	switch m.mode {
	case loginModeRegister:
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Key("firstName").Title("First Name").Value(&m.firstName).
					Validate(notEmpty("first name")),
				huh.NewInput().Key("lastName").Title("Last Name").Value(&m.lastName).
					Validate(notEmpty("last name")),
				email,
				huh.NewInput().Key("phone").Title("Phone").Value(&m.phone),
				huh.NewInput().Key("country").Title("Country").Value(&m.country),
				huh.NewInput().Key("password").Title("Password").Value(&m.password).
					EchoMode(huh.EchoModePassword).
					Validate(func(s string) error {
						if len(s) < 8 {
							return fmt.Errorf("password must be at least 8 characters")
						}
						return nil
					}),
				huh.NewInput().Key("passwordConfirm").Title("Confirm Password").Value(&m.confirm).
					EchoMode(huh.EchoModePassword).
					Validate(func(s string) error {
						if s != m.password {
							return fmt.Errorf("passwords do not match")
						}
						return nil
					}),
				huh.NewInput().Key("referral").Title("Referral Code (optional)").Value(&m.referral),
			),
		).WithWidth(50).WithShowHelp(false)

	case loginModeForgot:
		return huh.NewForm(
			huh.NewGroup(email),
		).WithWidth(50).WithShowHelp(false)

	case loginModeReset:
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Key("token").Title("Reset Code").Value(&m.token).
					Validate(notEmpty("reset code")),
				huh.NewInput().Key("password").Title("New Password").Value(&m.password).
					EchoMode(huh.EchoModePassword).
					Validate(func(s string) error {
						if len(s) < 8 {
							return fmt.Errorf("password must be at least 8 characters")
						}
						return nil
					}),
			),
		).WithWidth(50).WithShowHelp(false)

	default:
		return huh.NewForm(
			huh.NewGroup(
				email,
				huh.NewInput().Key("password").Title("Password").Value(&m.password).
					EchoMode(huh.EchoModePassword).
					Validate(notEmpty("password")),
			),
		).WithWidth(50).WithShowHelp(false)
	}
}

func notEmpty(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", label)
		}
		return nil
	}
}

type loginResultMsg struct {
	creds *auth.Credentials
	err   error
}

type forgotResultMsg struct {
	err error
}

type resetResultMsg struct {
	err error
}

func (m LoginModel) loginCmd() tea.Cmd {
	email, password := m.email, m.password

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		creds, err := m.authService.Login(ctx, email, password)

		return loginResultMsg{creds: creds, err: err}
	}
}

func (m LoginModel) registerCmd() tea.Cmd {
	params := auth.RegisterParams{
		FirstName:       m.firstName,
		LastName:        m.lastName,
		Email:           m.email,
		Phone:           m.phone,
		Country:         m.country,
		Password:        m.password,
		PasswordConfirm: m.confirm,
		ReferralCode:    m.referral,
	}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		creds, err := m.authService.Register(ctx, params)

		return loginResultMsg{creds: creds, err: err}
	}
}

func (m LoginModel) forgotCmd() tea.Cmd {
	email := m.email

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return forgotResultMsg{err: m.authService.ForgotPassword(ctx, email)}
	}
}

func (m LoginModel) resetCmd() tea.Cmd {
	token, password := m.token, m.password

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return resetResultMsg{err: m.authService.ResetPassword(ctx, token, password)}
	}
}
