package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markoswell/optivest/internal/collection"
	"github.com/markoswell/optivest/internal/plan"
)

type plansState int

const (
	plansStateBrowse plansState = iota
	plansStateEdit
)

// PlansModel is the admin catalog of investment products.
type PlansModel struct {
	CommonModel
	planService *plan.Service

	state   plansState
	table   table.Model
	plans   []*plan.Plan
	form    *huh.Form
	editing *plan.Plan

	loading bool
	err     error
	status  string

	// Form bindings
	formName       string
	formDesc       string
	formPercentage string
	formDuration   string
	formTiming     plan.Timing
	formMin        string
	formMax        string
	formReferral   string
}

func NewPlansModel(planSvc *plan.Service) PlansModel {
	columns := []table.Column{
		{Title: "Name", Width: 16},
		{Title: "Return", Width: 8},
		{Title: "Duration", Width: 12},
		{Title: "Min", Width: 12},
		{Title: "Max", Width: 12},
		{Title: "Referral", Width: 8},
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

	return PlansModel{
		planService: planSvc,
		table:       t,
		loading:     true,
	}
}

func (m PlansModel) Title() string { return "Plans" }
func (m PlansModel) ShortHelp() string {
	if m.state == plansStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | x: delete | r: refresh"
}

func (m PlansModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PlansModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPlansMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.plans = msg.plans
		m.status = ""
		m.refreshTable()

		return m, nil

	case planSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.plans = collection.Reconcile(m.plans, msg.kind, msg.plan)
		m.status = "Saved."
		m.refreshTable()

		return m, nil

	case planDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.plans = collection.Remove(m.plans, msg.id)
		m.status = "Plan deleted."
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == plansStateEdit {
		return m.updateEdit(msg)
	}

	return m.updateBrowse(msg)
}

func (m PlansModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m PlansModel) enterEditMode(target *plan.Plan) (tea.Model, tea.Cmd) {
	m.editing = target

	if target != nil {
		m.formName = target.Name
		m.formDesc = target.Description
		m.formPercentage = target.Percentage.String()
		m.formDuration = strconv.Itoa(target.Duration)
		m.formTiming = target.TimingParameter
		m.formMin = target.MinDeposit.String()
		m.formMax = target.MaxDeposit.String()
		m.formReferral = target.ReferralBonus.String()
	} else {
		m.formName = ""
		m.formDesc = ""
		m.formPercentage = ""
		m.formDuration = ""
		m.formTiming = plan.TimingDays
		m.formMin = ""
		m.formMax = ""
		m.formReferral = "0"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Name").Value(&m.formName).
				Validate(notEmpty("name")),
			huh.NewInput().Key("description").Title("Description").Value(&m.formDesc),
			huh.NewInput().Key("percentage").Title("Return %").Value(&m.formPercentage).
				Validate(validDecimal),
			huh.NewInput().Key("duration").Title("Duration").Value(&m.formDuration).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(s); err != nil {
						return fmt.Errorf("enter a whole number")
					}
					return nil
				}),
			huh.NewSelect[plan.Timing]().
				Key("timing").
				Title("Timing").
				Options(
					huh.NewOption("Hours", plan.TimingHours),
					huh.NewOption("Days", plan.TimingDays),
				).
				Value(&m.formTiming),
			huh.NewInput().Key("minDeposit").Title("Minimum Deposit").Value(&m.formMin).
				Validate(validDecimal),
			huh.NewInput().Key("maxDeposit").Title("Maximum Deposit").Value(&m.formMax).
				Validate(validDecimal),
			huh.NewInput().Key("referralBonus").Title("Referral Bonus %").Value(&m.formReferral).
				Validate(validDecimal),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = plansStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m PlansModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = plansStateBrowse
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

	m.state = plansStateBrowse
	m.form = nil
	m.table.Focus()

	return m, m.saveCmd()
}

func (m PlansModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading plans...")
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

	if m.state == plansStateEdit && m.form != nil {
		title := "New Plan"
		if m.editing != nil {
			title = "Edit Plan"
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

func validDecimal(s string) error {
	if _, err := decimal.NewFromString(s); err != nil {
		return fmt.Errorf("enter a valid number")
	}

	return nil
}

func (m *PlansModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.plans))
	for _, p := range m.plans {
		rows = append(rows, table.Row{
			p.Name,
			p.Percentage.String() + "%",
			fmt.Sprintf("%d %s", p.Duration, p.TimingParameter),
			FormatMoney(p.MinDeposit),
			FormatMoney(p.MaxDeposit),
			p.ReferralBonus.String() + "%",
		})
	}

	m.table.SetRows(rows)
}

func (m PlansModel) selected() *plan.Plan {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.plans) {
		return nil
	}

	return m.plans[idx]
}

// Messages

type loadPlansMsg struct {
	plans []*plan.Plan
	err   error
}

func (m PlansModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		plans, err := m.planService.List(ctx)

		return loadPlansMsg{plans: plans, err: err}
	}
}

type planSavedMsg struct {
	plan *plan.Plan
	kind collection.Mutation
	err  error
}

func (m PlansModel) saveCmd() tea.Cmd {
	duration, _ := strconv.Atoi(m.formDuration)

	params := plan.CreateParams{
		Name:            m.formName,
		Description:     m.formDesc,
		Percentage:      decimal.RequireFromString(m.formPercentage),
		Duration:        duration,
		TimingParameter: m.formTiming,
		MinDeposit:      decimal.RequireFromString(m.formMin),
		MaxDeposit:      decimal.RequireFromString(m.formMax),
		ReferralBonus:   decimal.RequireFromString(m.formReferral),
	}

	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		if editing != nil {
			updated, err := m.planService.Update(ctx, editing.ID, params)
			return planSavedMsg{plan: updated, kind: collection.MutationUpdate, err: err}
		}

		created, err := m.planService.Create(ctx, params)

		return planSavedMsg{plan: created, kind: collection.MutationCreate, err: err}
	}
}

type planDeletedMsg struct {
	id  uuid.UUID
	err error
}

func (m PlansModel) deleteCmd() tea.Cmd {
	target := m.selected()
	if target == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		err := m.planService.Delete(ctx, target.ID)

		return planDeletedMsg{id: target.ID, err: err}
	}
}
