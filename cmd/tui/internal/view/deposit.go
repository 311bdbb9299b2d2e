package view

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markoswell/optivest/internal/payoption"
	"github.com/markoswell/optivest/internal/transaction"
	"github.com/markoswell/optivest/internal/wizard"
)

// depositResult collects the record created by a confirmed submission.
// It is shared between the model copies bubbletea makes on update.
type depositResult struct {
	tx *transaction.Transaction
}

type DepositModel struct {
	CommonModel
	txService  *transaction.Service
	payService *payoption.Service

	machine *wizard.Machine
	result  *depositResult

	options []*payoption.PaymentOption
	cursor  int
	form    *huh.Form

	loading bool
	busy    bool
	err     error

	// Form bindings
	formAmount  string
	formReceipt string
}

func NewDepositModel(txSvc *transaction.Service, paySvc *payoption.Service) DepositModel {
	result := &depositResult{}
	machine := wizard.NewMachine(transaction.DepositFlow(txSvc, func(tx *transaction.Transaction) {
		result.tx = tx
	}))

	return DepositModel{
		txService:  txSvc,
		payService: paySvc,
		machine:    machine,
		result:     result,
		loading:    true,
	}
}

func (m DepositModel) Title() string { return "Deposit Funds" }
func (m DepositModel) ShortHelp() string {
	switch m.machine.Current().Kind {
	case wizard.StepChoice:
		return "↑/↓: move | Enter: select | Esc: back"
	case wizard.StepForm:
		return "Navigate form | Esc: step back"
	default:
		return "n: new deposit | Esc: back"
	}
}

func (m DepositModel) Init() tea.Cmd {
	return m.loadOptionsCmd()
}

func (m DepositModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case depositOptionsMsg:
		m.loading = false
		m.options = msg.options
		m.err = msg.err

		return m, nil

	case depositSubmitMsg:
		m.busy = false
		if msg.err == nil {
			m.form = nil
			return m, nil
		}

		// Stay on the form so the inputs can be corrected.
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

func (m DepositModel) updateChoice(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	choices := m.choiceCount()

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

		if m.machine.Current().Key == transaction.KeyType {
			types := []transaction.Type{transaction.TypeInvestmentDeposit, transaction.TypeCopytradeDeposit}
			_ = m.machine.Select(types[m.cursor])
		} else {
			_ = m.machine.Select(m.options[m.cursor])
		}

		m.cursor = 0

		if m.machine.Current().Kind == wizard.StepForm {
			m.form = m.buildForm()
			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m DepositModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m DepositModel) updateDone(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		m.formReceipt = ""
	}

	return m, nil
}

func (m DepositModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading payment methods...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to back)")
	}

	if m.busy {
		return lipgloss.NewStyle().Padding(2).Render("Submitting deposit...")
	}

	step := m.machine.Current()
	header := fmt.Sprintf("Deposit | Step %d of %d | %s", m.machine.Step(), m.machine.Steps(), step.Title)

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

func (m DepositModel) renderChoices() string {
	var b strings.Builder

	if m.machine.Current().Key == transaction.KeyType {
		labels := []string{"Investment Deposit", "Copytrade Deposit"}
		for i, label := range labels {
			b.WriteString(choiceLine(label, i == m.cursor))
		}

		return b.String()
	}

	if len(m.options) == 0 {
		return faintStyle("No payment methods are available right now.")
	}

	for i, opt := range m.options {
		label := fmt.Sprintf("%s | %s %s", opt.DisplayName(), opt.Bank, opt.AccountNumber)
		b.WriteString(choiceLine(label, i == m.cursor))
	}

	return b.String()
}

func (m DepositModel) renderForm() string {
	details := ""
	if method, ok := m.machine.Selection(transaction.KeyMethod); ok {
		opt := method.(*payoption.PaymentOption)
		details = fmt.Sprintf("Pay to: %s\nAccount: %s %s\n", opt.DisplayName(), opt.Bank, opt.AccountNumber)

		if opt.Extra != "" {
			details += opt.Extra + "\n"
		}
	}

	form := ""
	if m.form != nil {
		form = m.form.View()
	}

	errLine := ""
	if msg := m.machine.Message(); msg != "" {
		errLine = errorStyle(msg) + "\n"
	}

	return details + "\n" + errLine + form
}

func (m DepositModel) renderDone() string {
	ref := ""
	if m.result.tx != nil {
		ref = fmt.Sprintf("Reference: %s\nAmount: %s\n", m.result.tx.Reference, FormatMoney(m.result.tx.Amount))
	}

	return "Your deposit was submitted and is pending review.\n\n" + ref
}

func (m DepositModel) choiceCount() int {
	if m.machine.Current().Key == transaction.KeyType {
		return 2
	}

	return len(m.options)
}

func choiceLine(label string, selected bool) string {
	if selected {
		return activeStyle("> "+label) + "\n"
	}

	return "  " + label + "\n"
}

func (m *DepositModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("500.00").
				Value(&m.formAmount).
				Validate(notEmpty("amount")),
			huh.NewInput().
				Key("receipt").
				Title("Payment Proof (file path)").
				Placeholder("/path/to/receipt.png").
				Value(&m.formReceipt).
				Validate(func(s string) error {
					if _, err := os.Stat(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("file not found")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

type depositOptionsMsg struct {
	options []*payoption.PaymentOption
	err     error
}

func (m DepositModel) loadOptionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		options, err := m.payService.List(ctx)

		return depositOptionsMsg{options: options, err: err}
	}
}

type depositSubmitMsg struct {
	err error
}

func (m DepositModel) submitCmd() tea.Cmd {
	values := wizard.Values{
		transaction.ValueAmount:  m.formAmount,
		transaction.ValueReceipt: strings.TrimSpace(m.formReceipt),
	}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return depositSubmitMsg{err: m.machine.Submit(ctx, values)}
	}
}
