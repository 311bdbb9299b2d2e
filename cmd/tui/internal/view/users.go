package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markoswell/optivest/internal/collection"
	"github.com/markoswell/optivest/internal/filter"
	"github.com/markoswell/optivest/internal/transaction"
	"github.com/markoswell/optivest/internal/user"
)

type usersState int

const (
	usersStateBrowse usersState = iota
	usersStateSearch
	usersStateFund
	usersStateConfirmDelete
)

var usersStatusCycle = []string{
	filter.All,
	string(user.StatusPending),
	string(user.StatusActive),
	string(user.StatusSuspended),
	string(user.StatusInactive),
}

// UsersModel is the admin account roster: filter by status or search,
// change account status, fund wallets, delete.
type UsersModel struct {
	CommonModel
	userService *user.Service

	state   usersState
	table   table.Model
	search  textinput.Model
	users   []*user.User
	visible []*user.User
	form    *huh.Form

	statusIdx int
	criteria  filter.Criteria

	loading bool
	busy    bool
	err     error
	status  string

	// Form bindings
	formWallet string
	formAmount string
	formReturn bool
}

func NewUsersModel(userSvc *user.Service) UsersModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Status", Width: 12},
		{Title: "Balance", Width: 12},
		{Title: "Copytrade", Width: 12},
		{Title: "Joined", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "name, email or phone"
	search.Width = 40

	return UsersModel{
		userService: userSvc,
		table:       t,
		search:      search,
		loading:     true,
	}
}

func (m UsersModel) Title() string { return "Accounts" }
func (m UsersModel) ShortHelp() string {
	switch m.state {
	case usersStateSearch:
		return "Enter: apply | Esc: cancel"
	case usersStateFund:
		return "Navigate form | Esc: cancel"
	case usersStateConfirmDelete:
		return "y: confirm delete | any other key: cancel"
	default:
		return "Esc: back | s: status | /: search | a: activate | u: suspend | d: deactivate | f: fund | x: delete | r: refresh"
	}
}

func (m UsersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m UsersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadUsersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.users = msg.users
		m.status = ""
		m.refreshTable()

		return m, nil

	case userUpdatedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.users = collection.Reconcile(m.users, collection.MutationUpdate, msg.user)
		m.status = fmt.Sprintf("%s is now %s", msg.user.Name(), msg.user.Status)
		m.refreshTable()

		return m, nil

	case userDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.users = collection.Remove(m.users, msg.id)
		m.status = "Account deleted."
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case usersStateSearch:
		return m.updateSearch(msg)
	case usersStateFund:
		return m.updateFund(msg)
	case usersStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	default:
		return m.updateBrowse(msg)
	}
}

func (m UsersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(usersStatusCycle)
			m.criteria.Status = usersStatusCycle[m.statusIdx]
			m.refreshTable()

			return m, nil
		case "/":
			m.state = usersStateSearch
			m.table.Blur()
			m.search.Focus()

			return m, textinput.Blink
		case "a":
			return m.startStatusChange(user.StatusActive)
		case "u":
			return m.startStatusChange(user.StatusSuspended)
		case "d":
			return m.startStatusChange(user.StatusInactive)
		case "f":
			if !m.busy {
				return m.enterFundMode()
			}

			return m, nil
		case "x":
			if !m.busy && m.selected() != nil {
				m.state = usersStateConfirmDelete
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m UsersModel) startStatusChange(status user.Status) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	if cmd := m.statusCmd(status); cmd != nil {
		m.busy = true
		return m, cmd
	}

	return m, nil
}

func (m UsersModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.search.SetValue("")
			m.criteria.Search = ""
			m.state = usersStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		case "enter":
			m.criteria.Search = m.search.Value()
			m.state = usersStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m UsersModel) enterFundMode() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.formWallet = transaction.SourceBalance
	m.formAmount = ""
	m.formReturn = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("wallet").
				Title("Wallet").
				Options(
					huh.NewOption("Investment Balance", transaction.SourceBalance),
					huh.NewOption("Copytrade Balance", transaction.SourceCopytrade),
					huh.NewOption("Referral Earnings", transaction.SourceReferral),
				).
				Value(&m.formWallet),
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("100.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if _, err := decimal.NewFromString(s); err != nil {
						return fmt.Errorf("enter a valid amount")
					}
					return nil
				}),
			huh.NewConfirm().
				Key("returnPrincipal").
				Title("Return principal?").
				Value(&m.formReturn),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = usersStateFund
	m.table.Blur()

	return m, m.form.Init()
}

func (m UsersModel) updateFund(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = usersStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = usersStateBrowse
	m.form = nil
	m.table.Focus()

	if cmd := m.fundCmd(); cmd != nil {
		m.busy = true
		return m, cmd
	}

	return m, nil
}

func (m UsersModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.state = usersStateBrowse
	if keyMsg.String() == "y" {
		if cmd := m.deleteCmd(); cmd != nil {
			m.busy = true
			return m, cmd
		}
	}

	return m, nil
}

func (m UsersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading accounts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to back)")
	}

	header := fmt.Sprintf("[s] Status: %s", activeStyle(cycleLabel(m.criteria.Status)))

	if m.state == usersStateSearch {
		header += "\nSearch: " + m.search.View()
	} else if m.criteria.Search != "" {
		header += fmt.Sprintf(" | Search: %s", activeStyle(m.criteria.Search))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle(m.ShortHelp()),
	)

	if m.state == usersStateFund && m.form != nil {
		target := m.selected()

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Fund Wallet\n\nAccount: %s\n\n%s", target.Name(), m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.state == usersStateConfirmDelete {
		target := m.selected()
		content = errorStyle(fmt.Sprintf("Delete %s? This cannot be undone. [y/N]", target.Name())) + "\n" + content
	}

	if m.busy {
		content = faintStyle("Processing...") + "\n" + content
	} else if m.status != "" {
		content = faintStyle(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *UsersModel) refreshTable() {
	m.visible = filter.Apply(m.users, m.criteria, time.Now())

	rows := make([]table.Row, 0, len(m.visible))
	for _, u := range m.visible {
		rows = append(rows, table.Row{
			u.Name(),
			u.Email,
			string(u.Status),
			FormatMoney(u.Wallet.Balance),
			FormatMoney(u.Wallet.CopytradeBalance),
			FormatDate(u.CreatedAt),
		})
	}

	m.table.SetRows(rows)
}

func (m UsersModel) selected() *user.User {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}

	return m.visible[idx]
}

// Messages

type loadUsersMsg struct {
	users []*user.User
	err   error
}

func (m UsersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		users, err := m.userService.List(ctx)

		return loadUsersMsg{users: users, err: err}
	}
}

type userUpdatedMsg struct {
	user *user.User
	err  error
}

func (m UsersModel) statusCmd(status user.Status) tea.Cmd {
	target := m.selected()
	if target == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		updated, err := m.userService.UpdateStatus(ctx, target.ID, status)

		return userUpdatedMsg{user: updated, err: err}
	}
}

func (m UsersModel) fundCmd() tea.Cmd {
	target := m.selected()
	if target == nil {
		return nil
	}

	amount, err := decimal.NewFromString(m.formAmount)
	if err != nil {
		return func() tea.Msg {
			return userUpdatedMsg{err: fmt.Errorf("invalid amount: %w", err)}
		}
	}

	params := user.FundParams{
		Wallet:          m.formWallet,
		Amount:          amount,
		ReturnPrincipal: m.formReturn,
	}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		updated, err := m.userService.FundWallet(ctx, target.ID, params)

		return userUpdatedMsg{user: updated, err: err}
	}
}

type userDeletedMsg struct {
	id  uuid.UUID
	err error
}

func (m UsersModel) deleteCmd() tea.Cmd {
	target := m.selected()
	if target == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		err := m.userService.Delete(ctx, target.ID)

		return userDeletedMsg{id: target.ID, err: err}
	}
}
