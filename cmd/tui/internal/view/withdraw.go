package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markoswell/optivest/internal/transaction"
	"github.com/markoswell/optivest/internal/user"
	"github.com/markoswell/optivest/internal/wizard"
)

var withdrawSources = []string{
	transaction.SourceBalance,
	transaction.SourceCopytrade,
	transaction.SourceReferral,
}

type withdrawResult struct {
	tx *transaction.Transaction
}

type WithdrawModel struct {
	CommonModel
	txService   *transaction.Service
	userService *user.Service

	machine *wizard.Machine
	result  *withdrawResult

	wallet user.Wallet
	banks  []*user.BankAccount
	cursor int
	form   *huh.Form

	loading bool
	busy    bool
	err     error

	formAmount string
}

func NewWithdrawModel(txSvc *transaction.Service, userSvc *user.Service) WithdrawModel {
	return WithdrawModel{
		txService:   txSvc,
		userService: userSvc,
		result:      &withdrawResult{},
		loading:     true,
	}
}

func (m WithdrawModel) Title() string { return "Withdraw Funds" }
func (m WithdrawModel) ShortHelp() string {
	if m.machine == nil {
		return "Esc: back"
	}

	switch m.machine.Current().Kind {
	case wizard.StepChoice:
		return "↑/↓: move | Enter: select | Esc: back"
	case wizard.StepForm:
		return "Navigate form | Esc: step back"
	default:
		return "n: new withdrawal | Esc: back"
	}
}

func (m WithdrawModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m WithdrawModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case withdrawLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.wallet = msg.wallet
		m.banks = msg.banks

		result := m.result
		m.machine = wizard.NewMachine(transaction.WithdrawalFlow(m.txService, m.wallet, func(tx *transaction.Transaction) {
			result.tx = tx
		}))

		return m, nil

	case withdrawSubmitMsg:
		m.busy = false
		if msg.err == nil {
			m.form = nil
			return m, nil
		}

		m.form = m.buildForm()

		return m, m.form.Init()
	}

	if m.loading || m.busy {
		return m, nil
	}

	if m.err != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			return m, Back
		}

		return m, nil
	}

	switch m.machine.Current().Kind {
	case wizard.StepChoice:
		return m.updateChoice(msg)
	case wizard.StepForm:
		return m.updateForm(msg)
	default:
		return m.updateDone(msg)
	}
}

func (m WithdrawModel) updateChoice(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	onSources := m.machine.Current().Key == transaction.KeySource

	choices := len(m.banks)
	if onSources {
		choices = len(withdrawSources)
	}

	switch keyMsg.String() {
	case "esc":
		if m.machine.Back() != nil {
			return m, Back
		}

		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < choices-1 {
			m.cursor++
		}
	case "enter":
		if choices == 0 {
			return m, nil
		}

		if onSources {
			_ = m.machine.Select(withdrawSources[m.cursor])
		} else {
			_ = m.machine.Select(m.banks[m.cursor])
		}

		m.cursor = 0

		if m.machine.Current().Kind == wizard.StepForm {
			m.form = m.buildForm()
			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m WithdrawModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		_ = m.machine.Back()

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

	return m, m.submitCmd()
}

func (m WithdrawModel) updateDone(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "n":
		_ = m.machine.Reset()
		m.result.tx = nil
		m.formAmount = ""
	}

	return m, nil
}

func (m WithdrawModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading wallet...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to back)")
	}

	if m.busy {
		return lipgloss.NewStyle().Padding(2).Render("Placing withdrawal request...")
	}

	step := m.machine.Current()
	header := fmt.Sprintf("Withdraw | Step %d of %d | %s", m.machine.Step(), m.machine.Steps(), step.Title)

	var body string

	switch step.Kind {
	case wizard.StepChoice:
		body = m.renderChoices()
	case wizard.StepForm:
		body = m.renderForm()
	default:
		body = m.renderDone()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		activeStyle(header),
		"",
		body,
		"",
		faintStyle(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m WithdrawModel) renderChoices() string {
	var b strings.Builder

	if m.machine.Current().Key == transaction.KeySource {
		balances := []string{
			FormatMoney(m.wallet.Balance),
			FormatMoney(m.wallet.CopytradeBalance),
			FormatMoney(m.wallet.ReferralBalance),
		}

		for i, source := range withdrawSources {
			label := fmt.Sprintf("%-20s %s", transaction.SourceLabel(source), balances[i])
			b.WriteString(choiceLine(label, i == m.cursor))
		}

		return b.String()
	}

	if len(m.banks) == 0 {
		return faintStyle("No withdrawal accounts saved. Add one under Profile first.")
	}

	for i, bank := range m.banks {
		b.WriteString(choiceLine(bank.Label(), i == m.cursor))
	}

	return b.String()
}

func (m WithdrawModel) renderForm() string {
	source, _ := m.machine.Selection(transaction.KeySource)
	name, _ := source.(string)

	available := m.wallet.Balance
	switch name {
	case transaction.SourceCopytrade:
		available = m.wallet.CopytradeBalance
	case transaction.SourceReferral:
		available = m.wallet.ReferralBalance
	}

	info := fmt.Sprintf("From: %s\nAvailable: %s\n", transaction.SourceLabel(name), FormatMoney(available))

	errLine := ""
	if msg := m.machine.Message(); msg != "" {
		errLine = errorStyle(msg) + "\n"
	}

	form := ""
	if m.form != nil {
		form = m.form.View()
	}

	return info + "\n" + errLine + form
}

func (m WithdrawModel) renderDone() string {
	ref := ""
	if m.result.tx != nil {
		ref = fmt.Sprintf("Reference: %s\nAmount: %s\n", m.result.tx.Reference, FormatMoney(m.result.tx.Amount))
	}

	return "Your withdrawal request is pending review.\n\n" + ref
}

func (m *WithdrawModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("100.00").
				Value(&m.formAmount).
				Validate(notEmpty("amount")),
		),
	).WithWidth(50).WithShowHelp(false)
}

type withdrawLoadMsg struct {
	wallet user.Wallet
	banks  []*user.BankAccount
	err    error
}

func (m WithdrawModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		me, err := m.userService.Me(ctx)
		if err != nil {
			return withdrawLoadMsg{err: err}
		}

		banks, err := m.userService.Banks(ctx)

		return withdrawLoadMsg{wallet: me.Wallet, banks: banks, err: err}
	}
}

type withdrawSubmitMsg struct {
	err error
}

func (m WithdrawModel) submitCmd() tea.Cmd {
	values := wizard.Values{transaction.ValueAmount: m.formAmount}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return withdrawSubmitMsg{err: m.machine.Submit(ctx, values)}
	}
}
