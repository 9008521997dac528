// Package snapshot renders a themed, exportable picture of the current board
// layout: groups laid out in their visual rows, squads as boxes, seated
// members colored by profession, with an occupancy summary underneath.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/The-Muster/internal/roster"
)

// Theme holds the palette a snapshot is rendered with.
type Theme struct {
	Name      string
	Border    lipgloss.Color
	Title     lipgloss.Color
	Muted     lipgloss.Color
	EmptySlot string
}

// Dark is the default snapshot theme.
var Dark = Theme{
	Name:      "dark",
	Border:    lipgloss.Color("#444444"),
	Title:     lipgloss.Color("#5B8DEF"),
	Muted:     lipgloss.Color("#888888"),
	EmptySlot: "·",
}

// Light is the alternate snapshot theme.
var Light = Theme{
	Name:      "light",
	Border:    lipgloss.Color("#b0b0b0"),
	Title:     lipgloss.Color("#1d4ed8"),
	Muted:     lipgloss.Color("#6b7280"),
	EmptySlot: "·",
}

// ThemeByName resolves a configured theme name, defaulting to dark.
func ThemeByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), "light") {
		return Light
	}
	return Dark
}

// Render produces the full snapshot text for a document.
func Render(data roster.AppData, theme Theme) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Title).
		Render("⬡ MUSTER · " + time.Now().Format("2006-01-02 15:04"))

	var rows []string
	for _, row := range roster.GroupRows(data.Groups) {
		var boxes []string
		for _, group := range row {
			boxes = append(boxes, renderGroup(data, group, theme))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	if len(rows) == 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.Muted).Render("No groups yet."))
	}

	sections := []string{header}
	sections = append(sections, rows...)
	sections = append(sections, renderStats(data, theme))
	return strings.Join(sections, "\n")
}

func renderGroup(data roster.AppData, group roster.Group, theme Theme) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(group.EffectiveColor())).
		Render(groupTitle(group))
	var squads []string
	for _, squad := range group.Squads {
		squads = append(squads, renderSquad(data, squad, theme))
	}
	body := title
	if len(squads) > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, squads...))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(group.EffectiveColor())).
		Padding(0, 1).
		Render(body)
}

func groupTitle(group roster.Group) string {
	if strategy := group.EffectiveStrategy(); strategy != "" {
		return fmt.Sprintf("%s · %s", group.Name, strategy)
	}
	return group.Name
}

func renderSquad(data roster.AppData, squad roster.Squad, theme Theme) string {
	name := lipgloss.NewStyle().Foreground(theme.Title).Render(squad.Name)
	lines := []string{name}
	for _, slot := range squad.Slots {
		lines = append(lines, renderSlot(data, slot, theme))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func renderSlot(data roster.AppData, slot roster.Slot, theme Theme) string {
	if !slot.Occupied() {
		return lipgloss.NewStyle().Foreground(theme.Muted).Render(theme.EmptySlot)
	}
	member, ok := data.FindMember(slot.MemberID)
	if !ok {
		return lipgloss.NewStyle().Foreground(theme.Muted).Render(theme.EmptySlot)
	}
	color := data.GameConfig.ProfessionColor(member.Profession)
	name := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(member.Name)
	return fmt.Sprintf("%s %s", name, member.Profession)
}

func renderStats(data roster.AppData, theme Theme) string {
	stats := roster.OccupancyStats(data)
	parts := []string{fmt.Sprintf("已上阵 %d", stats.Total)}
	for _, bucket := range stats.ByProfession {
		parts = append(parts, fmt.Sprintf("%s %d", bucket.Profession, bucket.Count))
	}
	return lipgloss.NewStyle().
		Foreground(theme.Muted).
		MarginTop(1).
		Render(strings.Join(parts, " · "))
}

// Write renders the document and writes the snapshot into dir, returning the
// file path.
func Write(data roster.AppData, theme Theme, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: ensure dir: %w", err)
	}
	name := fmt.Sprintf("board-%s.txt", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	content := Render(data, theme)
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return path, nil
}
