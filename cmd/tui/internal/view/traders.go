package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/markoswell/optivest/internal/collection"
	"github.com/markoswell/optivest/internal/copytrade"
)

type tradersState int

const (
	tradersStateBrowse tradersState = iota
	tradersStateEdit
)

// TradersModel is the admin catalog of copyable trader profiles.
type TradersModel struct {
	CommonModel
	ctService *copytrade.Service

	state   tradersState
	table   table.Model
	traders []*copytrade.Trader
	form    *huh.Form
	editing *copytrade.Trader

	loading bool
	err     error
	status  string

	// Form bindings
	formName    string
	formDesc    string
	formFees    string
	formMin     string
	formWinRate string
}

func NewTradersModel(ctSvc *copytrade.Service) TradersModel {
	columns := []table.Column{
		{Title: "Trader", Width: 20},
		{Title: "Win Rate", Width: 10},
		{Title: "Fees", Width: 8},
		{Title: "Min Deposit", Width: 14},
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

	return TradersModel{
		ctService: ctSvc,
		table:     t,
		loading:   true,
	}
}

func (m TradersModel) Title() string { return "Traders" }
func (m TradersModel) ShortHelp() string {
	if m.state == tradersStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | e: edit | x: delete | r: refresh"
}

func (m TradersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TradersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTradersMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.traders = msg.traders
		m.status = ""
		m.refreshTable()

		return m, nil

	case traderSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.traders = collection.Reconcile(m.traders, msg.kind, msg.trader)
		m.status = "Saved."
		m.refreshTable()

		return m, nil

	case traderDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.traders = collection.Remove(m.traders, msg.id)
		m.status = "Trader removed."
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == tradersStateEdit {
		return m.updateEdit(msg)
	}

	return m.updateBrowse(msg)
}

func (m TradersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m TradersModel) enterEditMode(target *copytrade.Trader) (tea.Model, tea.Cmd) {
	m.editing = target

	if target != nil {
		m.formName = target.TradeName
		m.formDesc = target.Description
		m.formFees = target.Fees.String()
		m.formMin = target.MinDeposit.String()
		m.formWinRate = target.WinRate.String()
	} else {
		m.formName = ""
		m.formDesc = ""
		m.formFees = ""
		m.formMin = ""
		m.formWinRate = ""
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("tradeName").Title("Trader Name").Value(&m.formName).
				Validate(notEmpty("trader name")),
			huh.NewInput().Key("description").Title("Description").Value(&m.formDesc),
			huh.NewInput().Key("fees").Title("Fees %").Value(&m.formFees).
				Validate(validDecimal),
			huh.NewInput().Key("minDeposit").Title("Minimum Deposit").Value(&m.formMin).
				Validate(validDecimal),
			huh.NewInput().Key("winRate").Title("Win Rate %").Value(&m.formWinRate).
				Validate(validDecimal),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = tradersStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m TradersModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = tradersStateBrowse
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

	m.state = tradersStateBrowse
	m.form = nil
	m.table.Focus()

	return m, m.saveCmd()
}

func (m TradersModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading traders...")
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

	if m.state == tradersStateEdit && m.form != nil {
		title := "New Trader"
		if m.editing != nil {
			title = "Edit Trader"
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

func (m *TradersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.traders))
	for _, tr := range m.traders {
		rows = append(rows, table.Row{
			tr.TradeName,
			tr.WinRate.String() + "%",
			tr.Fees.String() + "%",
			FormatMoney(tr.MinDeposit),
		})
	}

	m.table.SetRows(rows)
}

func (m TradersModel) selected() *copytrade.Trader {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.traders) {
		return nil
	}

	return m.traders[idx]
}

// Messages

type loadTradersMsg struct {
	traders []*copytrade.Trader
	err     error
}

func (m TradersModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		traders, err := m.ctService.List(ctx)

		return loadTradersMsg{traders: traders, err: err}
	}
}

type traderSavedMsg struct {
	trader *copytrade.Trader
	kind   collection.Mutation
	err    error
}

func (m TradersModel) saveCmd() tea.Cmd {
	params := copytrade.CreateParams{
		TradeName:   m.formName,
		Description: m.formDesc,
		Fees:        decimal.RequireFromString(m.formFees),
		MinDeposit:  decimal.RequireFromString(m.formMin),
		WinRate:     decimal.RequireFromString(m.formWinRate),
	}

	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		if editing != nil {
			updated, err := m.ctService.Update(ctx, editing.ID, params)
			return traderSavedMsg{trader: updated, kind: collection.MutationUpdate, err: err}
		}

		created, err := m.ctService.Create(ctx, params)

		return traderSavedMsg{trader: created, kind: collection.MutationCreate, err: err}
	}
}

type traderDeletedMsg struct {
	id  uuid.UUID
	err error
}

func (m TradersModel) deleteCmd() tea.Cmd {
	target := m.selected()
	if target == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := ApiCtx()
		defer cancel()

		err := m.ctService.Delete(ctx, target.ID)

		return traderDeletedMsg{id: target.ID, err: err}
	}
}
