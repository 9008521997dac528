// internal/tui/app.go
//
// This is the main TUI for Muster. It uses bubbletea, which follows The Elm
// Architecture: the App model holds ALL state, Update folds messages into a
// new model, View renders it. The roster engine does the real work; this
// layer only translates key presses into engine operations and paints the
// result.

package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kingrea/The-Muster/internal/config"
	"github.com/kingrea/The-Muster/internal/logbook"
	"github.com/kingrea/The-Muster/internal/roster"
	"github.com/kingrea/The-Muster/internal/snapshot"
	"github.com/kingrea/The-Muster/internal/storage"
)

// appState represents which "screen" we're on.
type appState int

const (
	stateBoard      appState = iota // The placement board
	stateMemberForm                 // Add/edit a pool member
	stateSkillEdit                  // Quick skill editor for a member
	stateImport                     // Batch import paste screen
	stateCatalog                    // Skill catalog editor
	stateConfirm                    // Modal confirmation for destructive ops
)

type boardFocus int

const (
	focusSidebar boardFocus = iota
	focusGrid
)

const exchangeFileName = "muster-exchange.json"

// pendingAction is a destructive operation waiting on the confirm modal.
type pendingAction struct {
	message string
	run     func() error
}

// askConfirmer satisfies the engine's confirmation capability. The modal
// flow sets answer before invoking the pending operation, so the engine's
// synchronous Confirm call sees the operator's decision.
type askConfirmer struct {
	answer bool
}

func (a *askConfirmer) Confirm(string) bool { return a.answer }

// memberItem implements list.Item for the unassigned-members sidebar.
type memberItem struct {
	member roster.Member
}

func (i memberItem) Title() string { return i.member.Name }
func (i memberItem) Description() string {
	parts := []string{i.member.Profession}
	if i.member.Ult != roster.SkillNone {
		parts = append(parts, i.member.Ult)
	}
	if i.member.Clan != roster.SkillNone {
		parts = append(parts, i.member.Clan)
	}
	if i.member.Note != "" {
		parts = append(parts, i.member.Note)
	}
	return strings.Join(parts, " · ")
}
func (i memberItem) FilterValue() string { return i.member.Name }

// App is the main application model.
type App struct {
	state   appState
	config  *config.Config
	engine  *roster.Engine
	store   storage.Store
	logbook *logbook.Logbook
	ask     *askConfirmer

	// Board cursor
	focus    boardFocus
	curGroup int
	curSquad int
	curSlot  int

	// UI components
	sidebar   list.Model
	form      *memberForm
	skillForm *skillForm
	importBox *importForm
	catalog   *catalogForm
	pending   *pendingAction

	statusMsg string
	width     int
	height    int
}

// NewApp creates the App, wiring config, storage, logbook, and engine.
func NewApp(projectDir string) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	store, err := boltOpen(cfg.StorePath())
	if err != nil {
		return nil, err
	}
	logPath := filepath.Join(cfg.LogsDir(), "journey.log")
	lb, err := logbook.New(logPath)
	if err != nil {
		lb = nil
	}
	ask := &askConfirmer{}
	engine := roster.NewEngine(store, ask, roster.WithLogbook(lb))
	engine.Load()
	if lb != nil {
		lb.Info("Session opened · %d member(s) in pool", len(engine.Document().Pool))
	}

	sidebar := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	sidebar.Title = "待命成员"
	sidebar.SetShowStatusBar(false)
	sidebar.SetFilteringEnabled(false)

	app := &App{
		state:   stateBoard,
		config:  cfg,
		engine:  engine,
		store:   store,
		logbook: lb,
		ask:     ask,
		focus:   focusSidebar,
		sidebar: sidebar,
	}
	app.refreshSidebar()
	return app, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// refreshSidebar rebuilds the unassigned-member list from the document.
func (a *App) refreshSidebar() {
	doc := a.engine.Document()
	unassigned := roster.UnassignedMembers(doc)
	items := make([]list.Item, len(unassigned))
	for i, m := range unassigned {
		items[i] = memberItem{member: m}
	}
	a.sidebar.SetItems(items)
	a.clampCursor(doc)
}

// clampCursor keeps the grid cursor on an existing slot after structural
// edits.
func (a *App) clampCursor(doc roster.AppData) {
	if len(doc.Groups) == 0 {
		a.curGroup, a.curSquad, a.curSlot = 0, 0, 0
		return
	}
	if a.curGroup >= len(doc.Groups) {
		a.curGroup = len(doc.Groups) - 1
	}
	group := doc.Groups[a.curGroup]
	if len(group.Squads) == 0 {
		a.curSquad, a.curSlot = 0, 0
		return
	}
	if a.curSquad >= len(group.Squads) {
		a.curSquad = len(group.Squads) - 1
	}
	squad := group.Squads[a.curSquad]
	if len(squad.Slots) == 0 {
		a.curSlot = 0
		return
	}
	if a.curSlot >= len(squad.Slots) {
		a.curSlot = len(squad.Slots) - 1
	}
}

func (a *App) cursorRef() roster.SlotRef {
	return roster.SlotRef{Group: a.curGroup, Squad: a.curSquad, Slot: a.curSlot}
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.sidebar.SetSize(maxInt(24, msg.Width/3-4), maxInt(8, msg.Height-12))
		return a, nil

	case tea.KeyMsg:
		switch a.state {
		case stateConfirm:
			return a.updateConfirm(msg)
		case stateMemberForm:
			return a.updateMemberForm(msg)
		case stateSkillEdit:
			return a.updateSkillForm(msg)
		case stateImport:
			return a.updateImportForm(msg)
		case stateCatalog:
			return a.updateCatalogForm(msg)
		}
		return a.updateBoard(msg)
	}

	if a.state == stateBoard && a.focus == focusSidebar {
		var cmd tea.Cmd
		a.sidebar, cmd = a.sidebar.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit

	case "tab":
		if a.focus == focusSidebar {
			a.focus = focusGrid
		} else {
			a.focus = focusSidebar
		}
		return a, nil

	case "esc":
		if a.engine.Dragging() != nil {
			a.engine.CancelDrag()
			a.statusMsg = "Drag cancelled"
			return a, nil
		}
		if a.engine.Armed() != "" {
			a.engine.CancelSelection()
			a.statusMsg = "Selection cancelled"
		}
		return a, nil

	case "enter":
		if a.focus == focusSidebar {
			return a.armSelected()
		}
		return a.clickCursorSlot()

	case " ":
		if a.focus == focusGrid {
			return a.pickOrDrop()
		}
		return a, nil

	case "up", "k":
		if a.focus == focusGrid {
			if a.curSlot > 0 {
				a.curSlot--
			}
			return a, nil
		}
	case "down", "j":
		if a.focus == focusGrid {
			a.curSlot++
			a.clampCursor(a.engine.Document())
			return a, nil
		}
	case "left", "h":
		if a.focus == focusGrid {
			if a.curSquad > 0 {
				a.curSquad--
				a.clampCursor(a.engine.Document())
			}
			return a, nil
		}
	case "right", "l":
		if a.focus == focusGrid {
			a.curSquad++
			a.clampCursor(a.engine.Document())
			return a, nil
		}
	case "g":
		if a.focus == focusGrid {
			doc := a.engine.Document()
			if len(doc.Groups) > 0 {
				a.curGroup = (a.curGroup + 1) % len(doc.Groups)
				a.curSquad, a.curSlot = 0, 0
			}
			return a, nil
		}

	case "a":
		a.form = newMemberForm(roster.Member{})
		a.state = stateMemberForm
		return a, nil

	case "e":
		if a.focus == focusSidebar {
			if item, ok := a.sidebar.SelectedItem().(memberItem); ok {
				a.form = newMemberForm(item.member)
				a.state = stateMemberForm
			}
			return a, nil
		}
		return a.editCursorSkills()

	case "d":
		if a.focus == focusSidebar {
			if item, ok := a.sidebar.SelectedItem().(memberItem); ok {
				if err := a.engine.DeleteMember(item.member.ID); err != nil {
					a.statusMsg = err.Error()
				} else {
					a.statusMsg = fmt.Sprintf("%s removed from pool", item.member.Name)
				}
				a.refreshSidebar()
			}
		}
		return a, nil

	case "i":
		a.importBox = newImportForm()
		a.state = stateImport
		return a, nil

	case "c":
		a.catalog = newCatalogForm(a.engine.Config())
		a.state = stateCatalog
		return a, nil

	case "s":
		return a.exportSnapshot()

	case "G":
		if err := a.engine.AddGroup(); err != nil {
			a.statusMsg = err.Error()
		} else {
			a.statusMsg = "Group added"
		}
		a.refreshSidebar()
		return a, nil

	case "X":
		return a.removeGroup()

	case "+", "=":
		if err := a.engine.AddSquad(a.curGroup); err != nil {
			a.statusMsg = err.Error()
		} else {
			a.statusMsg = "Squad added"
		}
		a.refreshSidebar()
		return a, nil

	case "-":
		return a.removeLastSquad()

	case "]":
		if err := a.engine.AddSlot(a.curGroup, a.curSquad); err != nil {
			a.statusMsg = err.Error()
		} else {
			a.statusMsg = "Slot added"
		}
		return a, nil

	case "[":
		return a.removeTrailingSlot()

	case "t":
		next := "light"
		if a.config.SnapshotTheme() == "light" {
			next = "dark"
		}
		if err := a.config.SetSnapshotTheme(next); err != nil {
			a.statusMsg = err.Error()
		} else {
			a.statusMsg = fmt.Sprintf("Snapshot theme: %s", next)
		}
		return a, nil

	case "n":
		doc := a.engine.Document()
		if a.curGroup < len(doc.Groups) {
			next := !doc.Groups[a.curGroup].NewLine
			if err := a.engine.SetGroupNewLine(a.curGroup, next); err != nil {
				a.statusMsg = err.Error()
			} else {
				a.statusMsg = fmt.Sprintf("Row break: %v", next)
			}
		}
		return a, nil

	case "E":
		return a.exportExchange()

	case "I":
		return a.importExchange()
	}

	if a.focus == focusSidebar {
		var cmd tea.Cmd
		a.sidebar, cmd = a.sidebar.Update(msg)
		return a, cmd
	}
	return a, nil
}

// armSelected arms (or toggles) the sidebar selection for placement.
func (a *App) armSelected() (tea.Model, tea.Cmd) {
	item, ok := a.sidebar.SelectedItem().(memberItem)
	if !ok {
		return a, nil
	}
	a.engine.SelectMember(item.member.ID)
	if a.engine.Armed() == "" {
		a.statusMsg = "Selection cleared"
	} else {
		a.statusMsg = fmt.Sprintf("%s armed · enter on a slot to place", item.member.Name)
		a.focus = focusGrid
	}
	return a, nil
}

// clickCursorSlot routes a grid click through the engine, deferring the
// occupied-slot removal path to the confirm modal.
func (a *App) clickCursorSlot() (tea.Model, tea.Cmd) {
	ref := a.cursorRef()
	doc := a.engine.Document()
	slot, ok := doc.SlotAt(ref)
	if !ok {
		return a, nil
	}
	if a.engine.Armed() == "" && slot.Occupied() {
		name := slot.MemberID
		if m, found := doc.FindMember(slot.MemberID); found {
			name = m.Name
		}
		a.confirmThen(fmt.Sprintf("Remove %s from this slot?", name), func() error {
			return a.engine.ClickSlot(ref)
		})
		return a, nil
	}
	a.reportOp(a.engine.ClickSlot(ref), "Placed")
	a.refreshSidebar()
	return a, nil
}

// pickOrDrop implements the pick-up-and-swap gesture on the grid.
func (a *App) pickOrDrop() (tea.Model, tea.Cmd) {
	ref := a.cursorRef()
	if a.engine.Dragging() != nil {
		a.reportOp(a.engine.Drop(ref), "Dropped")
		a.refreshSidebar()
		return a, nil
	}
	err := a.engine.DragStart(roster.DragPayload{Type: roster.DragFromSlot, Source: ref})
	if err != nil {
		a.statusMsg = err.Error()
	} else {
		a.statusMsg = "Picked up · space on a slot to swap"
	}
	return a, nil
}

func (a *App) editCursorSkills() (tea.Model, tea.Cmd) {
	doc := a.engine.Document()
	slot, ok := doc.SlotAt(a.cursorRef())
	if !ok || !slot.Occupied() {
		return a, nil
	}
	member, found := doc.FindMember(slot.MemberID)
	if !found {
		return a, nil
	}
	a.skillForm = newSkillForm(member)
	a.state = stateSkillEdit
	return a, nil
}

func (a *App) removeGroup() (tea.Model, tea.Cmd) {
	doc := a.engine.Document()
	if a.curGroup >= len(doc.Groups) {
		return a, nil
	}
	idx := a.curGroup
	name := doc.Groups[idx].Name
	a.confirmThen(fmt.Sprintf("Remove group %q and all of its squads?", name), func() error {
		return a.engine.RemoveGroup(idx)
	})
	return a, nil
}

func (a *App) removeLastSquad() (tea.Model, tea.Cmd) {
	doc := a.engine.Document()
	if a.curGroup >= len(doc.Groups) || len(doc.Groups[a.curGroup].Squads) == 0 {
		return a, nil
	}
	idx := a.curGroup
	squads := doc.Groups[idx].Squads
	name := squads[len(squads)-1].Name
	a.confirmThen(fmt.Sprintf("Remove squad %q? Seated members return to the pool.", name), func() error {
		return a.engine.RemoveLastSquad(idx)
	})
	return a, nil
}

func (a *App) removeTrailingSlot() (tea.Model, tea.Cmd) {
	doc := a.engine.Document()
	if a.curGroup >= len(doc.Groups) || a.curSquad >= len(doc.Groups[a.curGroup].Squads) {
		return a, nil
	}
	group, squad := a.curGroup, a.curSquad
	slots := doc.Groups[group].Squads[squad].Slots
	if len(slots) == 0 {
		return a, nil
	}
	last := slots[len(slots)-1]
	if !last.Occupied() {
		a.reportOp(a.engine.RemoveLastSlot(group, squad), "Slot removed")
		a.clampCursor(a.engine.Document())
		return a, nil
	}
	name := last.MemberID
	if m, ok := doc.FindMember(last.MemberID); ok {
		name = m.Name
	}
	a.confirmThen(fmt.Sprintf("Remove this slot? %s returns to the pool.", name), func() error {
		return a.engine.RemoveLastSlot(group, squad)
	})
	return a, nil
}

func (a *App) exportSnapshot() (tea.Model, tea.Cmd) {
	theme := snapshot.ThemeByName(a.config.SnapshotTheme())
	path, err := snapshot.Write(a.engine.Document(), theme, a.config.SnapshotsDir())
	if err != nil {
		a.statusMsg = err.Error()
		return a, nil
	}
	a.statusMsg = fmt.Sprintf("Snapshot written to %s", path)
	if a.logbook != nil {
		a.logbook.Info("Snapshot · %s", path)
	}
	return a, nil
}

func (a *App) exportExchange() (tea.Model, tea.Cmd) {
	raw, err := a.engine.ExportDocument()
	if err != nil {
		a.statusMsg = err.Error()
		return a, nil
	}
	path := filepath.Join(a.config.ProjectDir, exchangeFileName)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		a.statusMsg = fmt.Sprintf("Export failed: %v", err)
		return a, nil
	}
	a.statusMsg = fmt.Sprintf("Exported to %s", path)
	return a, nil
}

func (a *App) importExchange() (tea.Model, tea.Cmd) {
	path := filepath.Join(a.config.ProjectDir, exchangeFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		a.statusMsg = fmt.Sprintf("No exchange file at %s", path)
		return a, nil
	}
	// Validate before prompting so a malformed file never reaches the
	// confirm modal.
	if _, err := roster.ParseExchange(raw); err != nil {
		a.statusMsg = "Invalid exchange file format"
		return a, nil
	}
	a.confirmThen("Replace the current board with the imported file?", func() error {
		return a.engine.ImportExchange(raw)
	})
	return a, nil
}

// confirmThen queues a destructive operation behind the confirm modal.
func (a *App) confirmThen(message string, run func() error) {
	a.pending = &pendingAction{message: message, run: run}
	a.state = stateConfirm
}

func (a *App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := a.pending
	if pending == nil {
		a.state = stateBoard
		return a, nil
	}
	switch msg.String() {
	case "y", "Y":
		a.ask.answer = true
	case "n", "N", "esc":
		a.ask.answer = false
	default:
		return a, nil
	}
	a.pending = nil
	a.state = stateBoard
	a.reportOp(pending.run(), "Done")
	a.ask.answer = false
	a.refreshSidebar()
	return a, nil
}

// reportOp folds an engine result into the status line. A declined
// confirmation is quiet; a persist failure is a warning, not a rollback.
func (a *App) reportOp(err error, okMsg string) {
	switch {
	case err == nil:
		a.statusMsg = okMsg
	case errors.Is(err, roster.ErrDeclined):
		a.statusMsg = "Cancelled"
	default:
		a.statusMsg = fmt.Sprintf("⚠ %v", err)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
