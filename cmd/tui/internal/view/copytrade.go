package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/markoswell/optivest/internal/copytrade"
	"github.com/markoswell/optivest/internal/investment"
	"github.com/markoswell/optivest/internal/user"
	"github.com/markoswell/optivest/internal/wizard"
)

type copyResult struct {
	follow *investment.CopyFollow
}

type CopyTradeModel struct {
	CommonModel
	invService  *investment.Service
	ctService   *copytrade.Service
	userService *user.Service

	machine *wizard.Machine
	result  *copyResult

	wallet  user.Wallet
	traders []*copytrade.Trader
	cursor  int
	form    *huh.Form

	loading bool
	busy    bool
	err     error

	formAmount string
}

func NewCopyTradeModel(invSvc *investment.Service, ctSvc *copytrade.Service, userSvc *user.Service) CopyTradeModel {
	return CopyTradeModel{
		invService:  invSvc,
		ctService:   ctSvc,
		userService: userSvc,
		result:      &copyResult{},
		loading:     true,
	}
}

func (m CopyTradeModel) Title() string { return "Copy Trading" }
func (m CopyTradeModel) ShortHelp() string {
	if m.machine == nil {
		return "Esc: back"
	}

	switch m.machine.Current().Kind {
	case wizard.StepChoice:
		return "↑/↓: move | Enter: follow | Esc: back"
	case wizard.StepForm:
		return "Navigate form | Esc: step back"
	default:
		return "n: follow another | Esc: back"
	}
}

func (m CopyTradeModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CopyTradeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case copyLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.wallet = msg.wallet
		m.traders = msg.traders

		result := m.result
		m.machine = wizard.NewMachine(investment.CopyTradeFlow(m.invService, m.wallet, func(f *investment.CopyFollow) {
			result.follow = f
		}))

		return m, nil

	case copySubmitMsg:
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

func (m CopyTradeModel) updateChoice(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		if m.cursor < len(m.traders)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.traders) == 0 {
			return m, nil
		}

		_ = m.machine.Select(m.traders[m.cursor])
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	return m, nil
}

func (m CopyTradeModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m CopyTradeModel) updateDone(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "n":
		_ = m.machine.Reset()
		m.result.follow = nil
		m.formAmount = ""
	}

	return m, nil
}

func (m CopyTradeModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading traders...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to back)")
	}

	if m.busy {
		return lipgloss.NewStyle().Padding(2).Render("Placing copy trade...")
	}

	step := m.machine.Current()
	header := fmt.Sprintf("Copy Trading | Step %d of %d | %s", m.machine.Step(), m.machine.Steps(), step.Title)

	var body string

	switch step.Kind {
	case wizard.StepChoice:
		body = m.renderTraders()
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

func (m CopyTradeModel) renderTraders() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Copytrade Balance: %s\n\n", FormatMoney(m.wallet.CopytradeBalance)))

	if len(m.traders) == 0 {
		b.WriteString(faintStyle("No traders are open for copying right now."))
		return b.String()
	}

	for i, tr := range m.traders {
		label := fmt.Sprintf("%-16s win rate %s%% | fee %s%% | min %s",
			tr.TradeName, tr.WinRate, tr.Fees, FormatMoney(tr.MinDeposit))
		b.WriteString(choiceLine(label, i == m.cursor))
	}

	return b.String()
}

func (m CopyTradeModel) renderForm() string {
	info := ""
	if sel, ok := m.machine.Selection(investment.KeyTrader); ok {
		tr := sel.(*copytrade.Trader)
		info = fmt.Sprintf("Trader: %s\nMinimum: %s\nAvailable: %s\n",
			tr.TradeName, FormatMoney(tr.MinDeposit), FormatMoney(m.wallet.CopytradeBalance))

		if amount, err := decimal.NewFromString(strings.TrimSpace(m.formAmount)); err == nil {
			info += fmt.Sprintf("Fee on this amount: %s\n", FormatMoney(tr.Fee(amount)))
		}
	}

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

func (m CopyTradeModel) renderDone() string {
	detail := ""
	if m.result.follow != nil {
		detail = fmt.Sprintf("Amount: %s\n", FormatMoney(m.result.follow.Amount))
	}

	return "You are now copying this trader.\n\n" + detail
}

func (m *CopyTradeModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("250.00").
				Value(&m.formAmount).
				Validate(notEmpty("amount")),
		),
	).WithWidth(50).WithShowHelp(false)
}

type copyLoadMsg struct {
	wallet  user.Wallet
	traders []*copytrade.Trader
	err     error
}

func (m CopyTradeModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		me, err := m.userService.Me(ctx)
		if err != nil {
			return copyLoadMsg{err: err}
		}

		traders, err := m.ctService.List(ctx)

		return copyLoadMsg{wallet: me.Wallet, traders: traders, err: err}
	}
}

type copySubmitMsg struct {
	err error
}

func (m CopyTradeModel) submitCmd() tea.Cmd {
	values := wizard.Values{investment.ValueAmount: m.formAmount}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return copySubmitMsg{err: m.machine.Submit(ctx, values)}
	}
}
