package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/markoswell/optivest/internal/collection"
	"github.com/markoswell/optivest/internal/user"
)

type profileState int

const (
	profileStateBrowse profileState = iota
	profileStateEditProfile
	profileStatePassword
	profileStateAddBank
)

// ProfileModel manages the caller's details, password, and withdrawal
// accounts.
type ProfileModel struct {
	CommonModel
	userService *user.Service

	state  profileState
	me     *user.User
	banks  []*user.BankAccount
	cursor int
	form   *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formFirst    string
	formLast     string
	formPhone    string
	formCountry  string
	formCurrent  string
	formNext     string
	formBankKind string
	formBankName string
	formAccName  string
	formAccNum   string
	formAddress  string
	formNetwork  string
}

func NewProfileModel(userSvc *user.Service) ProfileModel {
	return ProfileModel{
		userService: userSvc,
		loading:     true,
	}
}

func (m ProfileModel) Title() string { return "Profile" }
func (m ProfileModel) ShortHelp() string {
	if m.state != profileStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | p: edit profile | w: change password | n: add account | x: remove account"
}

func (m ProfileModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.me = msg.me
		m.banks = msg.banks

		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = msg.note

		if msg.me != nil {
			m.me = msg.me
			me := msg.me

			return m, func() tea.Msg { return ProfileUpdatedMsg{User: me} }
		}

		return m, nil

	case bankSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.banks = collection.Reconcile(m.banks, collection.MutationCreate, msg.bank)
		m.status = "Withdrawal account added."

		return m, nil

	case bankDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.banks = collection.Remove(m.banks, msg.id)
		if m.cursor >= len(m.banks) && m.cursor > 0 {
			m.cursor--
		}

		m.status = "Withdrawal account removed."

		return m, nil
	}

	if m.state == profileStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m ProfileModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.banks)-1 {
			m.cursor++
		}
	case "p":
		return m.enterProfileForm()
	case "w":
		return m.enterPasswordForm()
	case "n":
		return m.enterBankForm()
	case "x":
		return m, m.deleteBankCmd()
	}

	return m, nil
}

func (m ProfileModel) enterProfileForm() (tea.Model, tea.Cmd) {
	m.formFirst = m.me.FirstName
	m.formLast = m.me.LastName
	m.formPhone = m.me.Phone
	m.formCountry = m.me.Country

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("firstName").Title("First Name").Value(&m.formFirst).
				Validate(notEmpty("first name")),
			huh.NewInput().Key("lastName").Title("Last Name").Value(&m.formLast).
				Validate(notEmpty("last name")),
			huh.NewInput().Key("phone").Title("Phone").Value(&m.formPhone),
			huh.NewInput().Key("country").Title("Country").Value(&m.formCountry),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = profileStateEditProfile

	return m, m.form.Init()
}

func (m ProfileModel) enterPasswordForm() (tea.Model, tea.Cmd) {
	m.formCurrent = ""
	m.formNext = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("current").Title("Current Password").Value(&m.formCurrent).
				EchoMode(huh.EchoModePassword).
				Validate(notEmpty("current password")),
			huh.NewInput().Key("next").Title("New Password").Value(&m.formNext).
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if len(s) < 8 {
						return fmt.Errorf("password must be at least 8 characters")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = profileStatePassword

	return m, m.form.Init()
}

func (m ProfileModel) enterBankForm() (tea.Model, tea.Cmd) {
	m.formBankKind = "bank"
	m.formBankName = ""
	m.formAccName = ""
	m.formAccNum = ""
	m.formAddress = ""
	m.formNetwork = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("kind").
				Title("Account Type").
				Options(
					huh.NewOption("Bank Account", "bank"),
					huh.NewOption("Crypto Wallet", "crypto"),
				).
				Value(&m.formBankKind),
		),
		huh.NewGroup(
			huh.NewInput().Key("bankName").Title("Bank Name").Value(&m.formBankName),
			huh.NewInput().Key("accountName").Title("Account Name").Value(&m.formAccName),
			huh.NewInput().Key("accountNumber").Title("Account Number").Value(&m.formAccNum),
		).WithHideFunc(func() bool { return m.formBankKind != "bank" }),
		huh.NewGroup(
			huh.NewInput().Key("walletAddress").Title("Wallet Address").Value(&m.formAddress),
			huh.NewInput().Key("network").Title("Network").Value(&m.formNetwork),
		).WithHideFunc(func() bool { return m.formBankKind != "crypto" }),
	).WithWidth(45).WithShowHelp(false)

	m.state = profileStateAddBank

	return m, m.form.Init()
}

func (m ProfileModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = profileStateBrowse
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	state := m.state
	m.state = profileStateBrowse
	m.form = nil

	switch state {
	case profileStateEditProfile:
		return m, m.saveProfileCmd()
	case profileStatePassword:
		return m, m.savePasswordCmd()
	case profileStateAddBank:
		return m, m.addBankCmd()
	}

	return m, nil
}

func (m ProfileModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading profile...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to back)")
	}

	if m.state != profileStateBrowse && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View() + "\n" + faintStyle(m.ShortHelp()))
	}

	details := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nCountry: %s\nStatus: %s\n",
		m.me.Name(), m.me.Email, m.me.Phone, m.me.Country, m.me.Status)

	var banks strings.Builder

	banks.WriteString("Withdrawal Accounts\n\n")

	if len(m.banks) == 0 {
		banks.WriteString(faintStyle("None saved yet.") + "\n")
	}

	for i, bank := range m.banks {
		banks.WriteString(choiceLine(bank.Label(), i == m.cursor))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		details,
		banks.String(),
		faintStyle(m.ShortHelp()),
	)

	if m.status != "" {
		content = faintStyle(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

type profileLoadMsg struct {
	me    *user.User
	banks []*user.BankAccount
	err   error
}

func (m ProfileModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		me, err := m.userService.Me(ctx)
		if err != nil {
			return profileLoadMsg{err: err}
		}

		banks, err := m.userService.Banks(ctx)

		return profileLoadMsg{me: me, banks: banks, err: err}
	}
}

type profileSavedMsg struct {
	me   *user.User
	note string
	err  error
}

func (m ProfileModel) saveProfileCmd() tea.Cmd {
	params := user.UpdateProfileParams{
		FirstName: &m.formFirst,
		LastName:  &m.formLast,
		Phone:     &m.formPhone,
		Country:   &m.formCountry,
	}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		me, err := m.userService.UpdateProfile(ctx, params)

		return profileSavedMsg{me: me, note: "Profile updated.", err: err}
	}
}

func (m ProfileModel) savePasswordCmd() tea.Cmd {
	current, next := m.formCurrent, m.formNext

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		err := m.userService.UpdatePassword(ctx, current, next)

		return profileSavedMsg{note: "Password changed.", err: err}
	}
}

type bankSavedMsg struct {
	bank *user.BankAccount
	err  error
}

func (m ProfileModel) addBankCmd() tea.Cmd {
	params := user.AddBankParams{
		BankName:      m.formBankName,
		AccountName:   m.formAccName,
		AccountNumber: m.formAccNum,
		WalletAddress: m.formAddress,
		Network:       m.formNetwork,
	}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		bank, err := m.userService.AddBank(ctx, params)

		return bankSavedMsg{bank: bank, err: err}
	}
}

type bankDeletedMsg struct {
	id  uuid.UUID
	err error
}

func (m ProfileModel) deleteBankCmd() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.banks) {
		return nil
	}

	target := m.banks[m.cursor]

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		err := m.userService.DeleteBank(ctx, target.ID)

		return bankDeletedMsg{id: target.ID, err: err}
	}
}
