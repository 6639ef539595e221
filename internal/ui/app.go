package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cdoyle/lister-tui/internal/config"
	"github.com/cdoyle/lister-tui/internal/list"
	"github.com/cdoyle/lister-tui/internal/presenter"
	"github.com/cdoyle/lister-tui/internal/store"
)

// inputMode says what the text input is currently capturing.
type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputEdit
)

// reloadMsg carries a freshly-parsed list after an external edit.
type reloadMsg struct {
	l *list.List
}

// storeErrMsg carries a load or watcher error.
type storeErrMsg struct {
	err error
}

// savedMsg reports the outcome of a background save.
type savedMsg struct {
	err error
}

// statusDelegate renders presenter notifications into a status line. The
// model re-reads PresentedItems after every operation, so the delegate only
// needs to describe what happened, not mirror the list.
type statusDelegate struct {
	presenter.NopDelegate
	last string
}

func (d *statusDelegate) FullRefresh() {
	d.last = "list reloaded"
}

func (d *statusDelegate) ItemInserted(it *list.Item, index int) {
	d.last = fmt.Sprintf("added %q", it.Text)
}

func (d *statusDelegate) ItemRemoved(it *list.Item, index int) {
	d.last = fmt.Sprintf("removed %q", it.Text)
}

func (d *statusDelegate) ItemUpdated(it *list.Item, index int) {
	d.last = fmt.Sprintf("updated %q", it.Text)
}

func (d *statusDelegate) ItemMoved(it *list.Item, from, to int) {
	d.last = fmt.Sprintf("moved %q to %d", it.Text, to)
}

func (d *statusDelegate) ColorChanged(c list.Color) {
	d.last = fmt.Sprintf("color is now %s", c)
}

// Model is the TUI application state. It owns the presenter: every
// mutation and every Replace happens on the bubbletea update goroutine,
// which satisfies the presenter's single-owner requirement.
type Model struct {
	cfg      *config.Config
	coord    *store.Coordinator
	pres     *presenter.AllItemsPresenter
	delegate *statusDelegate

	items    []*list.Item
	selected int

	mode    inputMode
	input   textinput.Model
	editing *list.Item

	keyMap    KeyMap
	helpModel help.Model
	showHelp  bool
	styles    *Styles

	width  int
	height int
	ready  bool

	status string
	err    error
}

// NewModel creates the TUI model. The presenter must already hold its
// initial list.
func NewModel(cfg *config.Config, coord *store.Coordinator, pres *presenter.AllItemsPresenter) Model {
	input := textinput.New()
	input.Placeholder = "What needs doing?"
	input.CharLimit = 200
	input.Width = 40

	d := &statusDelegate{}
	pres.SetDelegate(d)

	return Model{
		cfg:       cfg,
		coord:     coord,
		pres:      pres,
		delegate:  d,
		items:     pres.PresentedItems(),
		input:     input,
		keyMap:    DefaultKeyMap(),
		helpModel: help.New(),
		styles:    NewStyles(cfg.Theme),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(listenReloads(m.coord), listenErrors(m.coord))
}

// listenReloads waits for the next externally-edited list.
func listenReloads(c *store.Coordinator) tea.Cmd {
	return func() tea.Msg {
		l, ok := <-c.Reloads()
		if !ok {
			return nil
		}
		return reloadMsg{l: l}
	}
}

// listenErrors waits for the next store or watcher error.
func listenErrors(c *store.Coordinator) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-c.Errors()
		if !ok {
			return nil
		}
		return storeErrMsg{err: err}
	}
}

// saveCmd persists a presenter snapshot in the background.
func saveCmd(c *store.Coordinator, snapshot *list.List) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: c.Save(context.Background(), snapshot)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpModel.Width = msg.Width
		m.ready = true
		return m, nil

	case reloadMsg:
		m.pres.Replace(msg.l)
		m.refreshItems()
		m.status = m.delegate.last
		return m, listenReloads(m.coord)

	case storeErrMsg:
		m.status = m.styles.Error.Render(msg.err.Error())
		return m, listenErrors(m.coord)

	case savedMsg:
		if msg.err != nil {
			m.status = m.styles.Error.Render(fmt.Sprintf("save failed: %v", msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

// updateInput handles keys while the text input is active.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.mode = inputNone
		m.input.Blur()
		return m, nil

	case msg.Type == tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		mode := m.mode
		m.mode = inputNone
		if text == "" {
			return m, nil
		}
		switch mode {
		case inputAdd:
			m.pres.Insert(list.NewItem(text))
			m.selected = 0
		case inputEdit:
			if m.editing != nil {
				m.pres.UpdateText(m.editing, text)
			}
		}
		return m.afterMutation()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateKeys handles normal-mode keys.
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.selected < len(m.items)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Add):
		m.mode = inputAdd
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keyMap.Edit):
		if it := m.selectedItem(); it != nil {
			m.mode = inputEdit
			m.editing = it
			m.input.SetValue(it.Text)
			m.input.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Delete):
		if it := m.selectedItem(); it != nil {
			m.pres.Remove(it)
			return m.afterMutation()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Toggle):
		if it := m.selectedItem(); it != nil {
			m.pres.Toggle(it)
			return m.afterMutation()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.MoveUp):
		if it := m.selectedItem(); it != nil && m.pres.CanMove(it, m.selected-1) {
			m.pres.Move(it, m.selected-1)
			m.selected--
			return m.afterMutation()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.MoveDown):
		if it := m.selectedItem(); it != nil && m.pres.CanMove(it, m.selected+1) {
			m.pres.Move(it, m.selected+1)
			m.selected++
			return m.afterMutation()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Color):
		next := (m.pres.Color() + 1) % list.Color(list.ColorRed+1)
		m.pres.SetColor(next)
		return m.afterMutation()

	case key.Matches(msg, m.keyMap.ToggleAll):
		m.pres.SetAllComplete(!m.allComplete())
		return m.afterMutation()

	case key.Matches(msg, m.keyMap.Undo):
		if label, ok := m.pres.Undo().Undo(); ok {
			m.refreshItems()
			m.status = fmt.Sprintf("undid %s", strings.ToLower(label))
			if m.cfg.UI.Autosave {
				return m, saveCmd(m.coord, m.pres.ArchiveableList())
			}
			return m, nil
		}
		m.status = "nothing to undo"
		return m, nil

	case key.Matches(msg, m.keyMap.Save):
		return m, saveCmd(m.coord, m.pres.ArchiveableList())
	}

	return m, nil
}

// afterMutation refreshes the view and autosaves if configured.
func (m Model) afterMutation() (tea.Model, tea.Cmd) {
	m.refreshItems()
	m.status = m.delegate.last
	if m.cfg.UI.Autosave {
		return m, saveCmd(m.coord, m.pres.ArchiveableList())
	}
	return m, nil
}

func (m *Model) refreshItems() {
	m.items = m.pres.PresentedItems()
	if m.selected >= len(m.items) {
		m.selected = len(m.items) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) selectedItem() *list.Item {
	if m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return m.items[m.selected]
}

func (m Model) allComplete() bool {
	for _, it := range m.items {
		if !it.Complete {
			return false
		}
	}
	return len(m.items) > 0
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v\n\nPress 'q' to quit", m.err))
	}

	var b strings.Builder

	colorStyle := m.styles.ListColor(m.pres.Color())
	b.WriteString(m.styles.Header.Render(
		colorStyle.Render("●") + " " + m.coord.Name() + " " +
			m.styles.Subtle.Render("("+m.pres.Color().String()+")"),
	))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(m.styles.Subtle.Render("  No items. Press 'a' to add one."))
		b.WriteString("\n")
	}
	for i, it := range m.items {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		box := "[ ]"
		line := it.Text
		style := m.styles.ItemUnselected
		if it.Complete {
			box = "[x]"
			style = m.styles.ItemComplete
		}
		if i == m.selected {
			style = m.styles.ItemSelected
		}
		b.WriteString(cursor + box + " " + style.Render(line))
		b.WriteString("\n")
	}

	if m.mode != inputNone {
		b.WriteString("\n" + m.input.View() + "\n")
	}

	b.WriteString("\n" + m.styles.StatusBar.Render(m.status))
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.helpModel.FullHelpView(m.keyMap.FullHelp()))
	} else {
		b.WriteString(m.helpModel.ShortHelpView(m.keyMap.ShortHelp()))
	}

	return b.String()
}
