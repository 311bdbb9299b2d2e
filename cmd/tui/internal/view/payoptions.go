package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/markoswell/optivest/internal/collection"
	"github.com/markoswell/optivest/internal/payoption"
)

type payOptionsState int

const (
	payOptionsStateBrowse payOptionsState = iota
	payOptionsStateEdit
)

// PayOptionsModel is the admin catalog of deposit methods.
type PayOptionsModel struct {
	CommonModel
	payService *payoption.Service

	state   payOptionsState
	table   table.Model
	options []*payoption.PaymentOption
	form    *huh.Form
	editing *payoption.PaymentOption

	loading bool
	err     error
	status  string

	// Form bindings
	formChannel string
	formBank    string
	formAccName string
	formAccNum  string
	formExtra   string
}

func NewPayOptionsModel(paySvc *payoption.Service) PayOptionsModel {
	columns := []table.Column{
		{Title: "Channel", Width: 16},
		{Title: "Bank / Network", Width: 20},
		{Title: "Account Name", Width: 20},
		{Title: "Account / Address", Width: 30},
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

	return PayOptionsModel{
		payService: paySvc,
		table:      t,
		loading:    true,
	}
}

func (m PayOptionsModel) Title() string { return "Payment Options" }
func (m PayOptionsModel) ShortHelp() string {
	if m.state == payOptionsStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | x: delete | r: refresh"
}

func (m PayOptionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PayOptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPayOptionsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.options = msg.options
		m.status = ""
		m.refreshTable()

		return m, nil

	case payOptionSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.options = collection.Reconcile(m.options, msg.kind, msg.option)
		m.status = "Saved."
		m.refreshTable()

		return m, nil

	case payOptionDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.options = collection.Remove(m.options, msg.id)
		m.status = "Payment option removed."
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == payOptionsStateEdit {
		return m.updateEdit(msg)
	}

	return m.updateBrowse(msg)
}

func (m PayOptionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterEditMode(nil)
		case "e":
			if target := m.selected(); target != nil {
				return m.enterEditMode(target)
			}

			return m, nil
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PayOptionsModel) enterEditMode(target *payoption.PaymentOption) (tea.Model, tea.Cmd) {
	m.editing = target

	if target != nil {
		m.formChannel = target.PayOption
		m.formBank = target.Bank
		m.formAccName = target.AccountName
		m.formAccNum = target.AccountNumber
		m.formExtra = target.Extra
	} else {
		m.formChannel = payoption.ChannelBank
		m.formBank = ""
		m.formAccName = ""
		m.formAccNum = ""
		m.formExtra = ""
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("payOption").
				Title("Channel").
				Options(
					huh.NewOption("Bank Transfer", payoption.ChannelBank),
					huh.NewOption("Mobile Wallet", payoption.ChannelMobileWallet),
					huh.NewOption("Crypto Wallet", payoption.ChannelCryptoWallet),
				).
				Value(&m.formChannel),
			huh.NewInput().Key("bank").Title("Bank / Network").Value(&m.formBank).
				Validate(notEmpty("bank")),
			huh.NewInput().Key("accountName").Title("Account Name").Value(&m.formAccName),
			huh.NewInput().Key("accountNumber").Title("Account / Address").Value(&m.formAccNum).
				Validate(notEmpty("account number")),
			huh.NewInput().Key("extra").Title("Instructions (optional)").Value(&m.formExtra),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = payOptionsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m PayOptionsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = payOptionsStateBrowse
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

	m.state = payOptionsStateBrowse
	m.form = nil
	m.table.Focus()

	return m, m.saveCmd()
}

func (m PayOptionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading payment options...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to back)")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		faintStyle(m.ShortHelp()),
	)

	if m.state == payOptionsStateEdit && m.form != nil {
		title := "New Payment Option"
		if m.editing != nil {
			title = "Edit Payment Option"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *PayOptionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.options))
	for _, opt := range m.options {
		rows = append(rows, table.Row{
			opt.DisplayName(),
			opt.Bank,
			opt.AccountName,
			opt.AccountNumber,
		})
	}

	m.table.SetRows(rows)
}

func (m PayOptionsModel) selected() *payoption.PaymentOption {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.options) {
		return nil
	}

	return m.options[idx]
}

// Messages

type loadPayOptionsMsg struct {
	options []*payoption.PaymentOption
	err     error
}

func (m PayOptionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		options, err := m.payService.List(ctx)

		return loadPayOptionsMsg{options: options, err: err}
	}
}

type payOptionSavedMsg struct {
	option *payoption.PaymentOption
	kind   collection.Mutation
	err    error
}

func (m PayOptionsModel) saveCmd() tea.Cmd {
	params := payoption.CreateParams{
		PayOption:     m.formChannel,
		Bank:          m.formBank,
		AccountName:   m.formAccName,
		AccountNumber: m.formAccNum,
		Extra:         m.formExtra,
	}

	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		if editing != nil {
			updated, err := m.payService.Update(ctx, editing.ID, params)
			return payOptionSavedMsg{option: updated, kind: collection.MutationUpdate, err: err}
		}

		created, err := m.payService.Create(ctx, params)

		return payOptionSavedMsg{option: created, kind: collection.MutationCreate, err: err}
	}
}

type payOptionDeletedMsg struct {
	id  uuid.UUID
	err error
}

func (m PayOptionsModel) deleteCmd() tea.Cmd {
	target := m.selected()
	if target == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		err := m.payService.Delete(ctx, target.ID)

		return payOptionDeletedMsg{id: target.ID, err: err}
	}
}
