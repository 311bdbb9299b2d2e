package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markoswell/optivest/internal/investment"
	"github.com/markoswell/optivest/internal/plan"
	"github.com/markoswell/optivest/internal/user"
	"github.com/markoswell/optivest/internal/wizard"
)

var planTermCycle = []plan.Term{plan.TermAll, plan.TermShort, plan.TermMedium, plan.TermLong}

type investResult struct {
	inv *investment.Investment
}

type InvestModel struct {
	CommonModel
	invService  *investment.Service
	planService *plan.Service
	userService *user.Service

	machine *wizard.Machine
	result  *investResult

	wallet  user.Wallet
	plans   []*plan.Plan
	visible []*plan.Plan
	termIdx int
	cursor  int
	form    *huh.Form

	loading bool
	busy    bool
	err     error

	formAmount string
}

func NewInvestModel(invSvc *investment.Service, planSvc *plan.Service, userSvc *user.Service) InvestModel {
	return InvestModel{
		invService:  invSvc,
		planService: planSvc,
		userService: userSvc,
		result:      &investResult{},
		loading:     true,
	}
}

func (m InvestModel) Title() string { return "Invest" }
func (m InvestModel) ShortHelp() string {
	if m.machine == nil {
		return "Esc: back"
	}

	switch m.machine.Current().Kind {
	case wizard.StepChoice:
		return "↑/↓: move | Enter: select | t: term filter | Esc: back"
	case wizard.StepForm:
		return "Navigate form | Esc: step back"
	default:
		return "n: new investment | Esc: back"
	}
}

func (m InvestModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case investLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.wallet = msg.wallet
		m.plans = msg.plans
		m.visible = plan.ByTerm(m.plans, planTermCycle[m.termIdx])

		result := m.result
		m.machine = wizard.NewMachine(investment.InvestFlow(m.invService, m.wallet, func(inv *investment.Investment) {
			result.inv = inv
		}))

		return m, nil

	case investSubmitMsg:
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

func (m InvestModel) updateChoice(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "t":
		m.termIdx = (m.termIdx + 1) % len(planTermCycle)
		m.visible = plan.ByTerm(m.plans, planTermCycle[m.termIdx])
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.visible) == 0 {
			return m, nil
		}

		_ = m.machine.Select(m.visible[m.cursor])
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	return m, nil
}

func (m InvestModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m InvestModel) updateDone(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "n":
		_ = m.machine.Reset()
		m.result.inv = nil
		m.formAmount = ""
	}

	return m, nil
}

func (m InvestModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading plans...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to back)")
	}

	if m.busy {
		return lipgloss.NewStyle().Padding(2).Render("Placing investment...")
	}

	step := m.machine.Current()
	header := fmt.Sprintf("Invest | Step %d of %d | %s", m.machine.Step(), m.machine.Steps(), step.Title)

	var body string

	switch step.Kind {
	case wizard.StepChoice:
		body = m.renderPlans()
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

func (m InvestModel) renderPlans() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Available: %s | [t] Term: %s\n\n",
		FormatMoney(m.wallet.Balance), activeStyle(string(planTermCycle[m.termIdx]))))

	if len(m.visible) == 0 {
		b.WriteString(faintStyle("No plans in this bucket."))
		return b.String()
	}

	for i, p := range m.visible {
		label := fmt.Sprintf("%-14s %s%% over %d %s | %s - %s",
			p.Name, p.Percentage, p.Duration, p.TimingParameter,
			FormatMoney(p.MinDeposit), FormatMoney(p.MaxDeposit))
		b.WriteString(choiceLine(label, i == m.cursor))
	}

	return b.String()
}

func (m InvestModel) renderForm() string {
	info := ""
	if sel, ok := m.machine.Selection(investment.KeyPlan); ok {
		p := sel.(*plan.Plan)
		info = fmt.Sprintf("Plan: %s\nReturns: %s%% over %d %s\nRange: %s - %s\nAvailable: %s\n",
			p.Name, p.Percentage, p.Duration, p.TimingParameter,
			FormatMoney(p.MinDeposit), FormatMoney(p.MaxDeposit), FormatMoney(m.wallet.Balance))
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

func (m InvestModel) renderDone() string {
	detail := ""
	if m.result.inv != nil {
		detail = fmt.Sprintf("Amount: %s\nMatures: %s\n",
			FormatMoney(m.result.inv.Amount), FormatDate(m.result.inv.ExpiryDate))
	}

	return "Your investment is now active.\n\n" + detail
}

func (m *InvestModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("500.00").
				Value(&m.formAmount).
				Validate(notEmpty("amount")),
		),
	).WithWidth(50).WithShowHelp(false)
}

type investLoadMsg struct {
	wallet user.Wallet
	plans  []*plan.Plan
	err    error
}

func (m InvestModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		me, err := m.userService.Me(ctx)
		if err != nil {
			return investLoadMsg{err: err}
		}

		plans, err := m.planService.List(ctx)

		return investLoadMsg{wallet: me.Wallet, plans: plans, err: err}
	}
}

type investSubmitMsg struct {
	err error
}

func (m InvestModel) submitCmd() tea.Cmd {
	values := wizard.Values{investment.ValueAmount: m.formAmount}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		return investSubmitMsg{err: m.machine.Submit(ctx, values)}
	}
}
