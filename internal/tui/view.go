// internal/tui/view.go
//
// Rendering for every screen. The board view is a two-panel layout: the
// placement grid on the left, the unassigned-member sidebar on the right,
// the logbook tail and a status footer underneath.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/The-Muster/internal/roster"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	accentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD166"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
)

// View renders the current state to a string.
func (a *App) View() string {
	var content string
	switch a.state {
	case stateMemberForm:
		content = a.renderMemberForm()
	case stateSkillEdit:
		content = a.renderSkillForm()
	case stateImport:
		content = a.renderImportForm()
	case stateCatalog:
		content = a.renderCatalogForm()
	case stateConfirm:
		content = a.renderConfirm()
	default:
		content = a.renderBoard()
	}

	sections := []string{headerStyle.Render("⬡ MUSTER"), content}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, footerStyle.Render(a.statusMsg))
	return strings.Join(sections, "\n")
}

func (a *App) renderBoard() string {
	doc := a.engine.Document()
	grid := a.renderGrid(doc)
	sidebar := panelStyle.Render(a.sidebar.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(grid), sidebar)
	return lipgloss.JoinVertical(lipgloss.Left, a.renderSessionLine(doc), body, a.renderHelp())
}

// renderSessionLine shows the placement-session state and occupancy.
func (a *App) renderSessionLine(doc roster.AppData) string {
	stats := roster.OccupancyStats(doc)
	parts := []string{fmt.Sprintf("Pool %d · Seated %d", len(doc.Pool), stats.Total)}
	if armed := a.engine.Armed(); armed != "" {
		name := armed
		if m, ok := doc.FindMember(armed); ok {
			name = m.Name
		}
		parts = append(parts, accentStyle.Render(fmt.Sprintf("Armed: %s", name)))
	}
	if drag := a.engine.Dragging(); drag != nil {
		name := drag.MemberID
		if m, ok := doc.FindMember(drag.MemberID); ok {
			name = m.Name
		}
		parts = append(parts, accentStyle.Render(fmt.Sprintf("Carrying: %s", name)))
	}
	return mutedStyle.Render(strings.Join(parts, "    "))
}

func (a *App) renderGrid(doc roster.AppData) string {
	if len(doc.Groups) == 0 {
		return mutedStyle.Render("No groups. Press G to add one.")
	}
	var rows []string
	seen := 0
	for _, row := range roster.GroupRows(doc.Groups) {
		var boxes []string
		for _, group := range row {
			boxes = append(boxes, a.renderGroupBox(doc, group, seen))
			seen++
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderGroupBox(doc roster.AppData, group roster.Group, groupIdx int) string {
	title := group.Name
	if strategy := group.EffectiveStrategy(); strategy != "" {
		title += " · " + strategy
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(group.EffectiveColor()))
	if groupIdx == a.curGroup && a.focus == focusGrid {
		title = "» " + title
	}
	var squads []string
	for si, squad := range group.Squads {
		squads = append(squads, a.renderSquadBox(doc, squad, groupIdx, si))
	}
	body := titleStyle.Render(title)
	if len(squads) > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, body, lipgloss.JoinHorizontal(lipgloss.Top, squads...))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(group.EffectiveColor())).
		Padding(0, 1).
		Render(body)
}

func (a *App) renderSquadBox(doc roster.AppData, squad roster.Squad, groupIdx, squadIdx int) string {
	lines := []string{accentStyle.Render(squad.Name)}
	for li, slot := range squad.Slots {
		line := a.renderSlotLine(doc, slot)
		if a.focus == focusGrid && groupIdx == a.curGroup && squadIdx == a.curSquad && li == a.curSlot {
			line = cursorStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (a *App) renderSlotLine(doc roster.AppData, slot roster.Slot) string {
	if !slot.Occupied() {
		return mutedStyle.Render("—")
	}
	member, ok := doc.FindMember(slot.MemberID)
	if !ok {
		return mutedStyle.Render("—")
	}
	color := doc.GameConfig.ProfessionColor(member.Profession)
	name := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(member.Name)
	return fmt.Sprintf("%s %s", name, mutedStyle.Render(member.Profession))
}

func (a *App) renderHelp() string {
	help := "tab focus · enter select/place · space pick/swap · a add · e edit · d delete · i import · c catalogs · s snapshot · t theme · E/I exchange · G/X group · +/- squad · [/] slot · n row break · q quit"
	return mutedStyle.Render(help)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(5)
	if len(lines) == 0 {
		return ""
	}
	head := accentStyle.Render("LOG")
	body := mutedStyle.Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderMemberForm() string {
	if a.form == nil {
		return ""
	}
	var lines []string
	for i, input := range a.form.inputs {
		lines = append(lines, fmt.Sprintf("%s %s", memberFieldLabels[i], input.View()))
	}
	lines = append(lines, mutedStyle.Render("enter → next/save    esc → cancel"))
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderSkillForm() string {
	if a.skillForm == nil {
		return ""
	}
	lines := []string{
		accentStyle.Render(fmt.Sprintf("Skills · %s", a.skillForm.member.Name)),
		fmt.Sprintf("绝技  %s", a.skillForm.ult.View()),
		fmt.Sprintf("帮会技 %s", a.skillForm.clan.View()),
		mutedStyle.Render("enter → save    esc → cancel"),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderImportForm() string {
	if a.importBox == nil {
		return ""
	}
	lines := []string{
		accentStyle.Render("Batch import"),
		a.importBox.box.View(),
		mutedStyle.Render("ctrl+s → import    esc → cancel"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a *App) renderCatalogForm() string {
	if a.catalog == nil {
		return ""
	}
	lines := []string{
		accentStyle.Render("Skill catalogs"),
		fmt.Sprintf("绝技  %s", a.catalog.ult.View()),
		fmt.Sprintf("帮会技 %s", a.catalog.clan.View()),
		mutedStyle.Render("enter → save    ctrl+r → reset defaults    esc → cancel"),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderConfirm() string {
	if a.pending == nil {
		return ""
	}
	lines := []string{
		a.pending.message,
		mutedStyle.Render("y → confirm    n/esc → cancel"),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
