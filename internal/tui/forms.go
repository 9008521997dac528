// internal/tui/forms.go
//
// The small input screens: member editor, skill quick-editor, batch import,
// and catalog editor. Each owns its bubbles inputs and hands a finished
// value back to the engine on submit.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kingrea/The-Muster/internal/roster"
)

type memberForm struct {
	inputs []textinput.Model
	focus  int
	id     string
}

var memberFieldLabels = []string{"姓名", "职业", "绝技", "帮会技", "备注"}

func newMemberForm(member roster.Member) *memberForm {
	values := []string{member.Name, member.Profession, member.Ult, member.Clan, member.Note}
	inputs := make([]textinput.Model, len(values))
	for i, value := range values {
		input := textinput.New()
		input.Placeholder = memberFieldLabels[i]
		input.SetValue(value)
		input.CharLimit = 64
		inputs[i] = input
	}
	inputs[0].Focus()
	return &memberForm{inputs: inputs, id: member.ID}
}

func (f *memberForm) member() roster.Member {
	return roster.Member{
		ID:         f.id,
		Name:       strings.TrimSpace(f.inputs[0].Value()),
		Profession: strings.TrimSpace(f.inputs[1].Value()),
		Ult:        strings.TrimSpace(f.inputs[2].Value()),
		Clan:       strings.TrimSpace(f.inputs[3].Value()),
		Note:       strings.TrimSpace(f.inputs[4].Value()),
	}
}

func (f *memberForm) cycle(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (a *App) updateMemberForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := a.form
	if form == nil {
		a.state = stateBoard
		return a, nil
	}
	switch msg.String() {
	case "esc":
		a.form = nil
		a.state = stateBoard
		return a, nil
	case "tab", "down":
		form.cycle(1)
		return a, nil
	case "shift+tab", "up":
		form.cycle(-1)
		return a, nil
	case "enter":
		if form.focus < len(form.inputs)-1 {
			form.cycle(1)
			return a, nil
		}
		return a.submitMemberForm()
	}
	var cmd tea.Cmd
	form.inputs[form.focus], cmd = form.inputs[form.focus].Update(msg)
	return a, cmd
}

func (a *App) submitMemberForm() (tea.Model, tea.Cmd) {
	form := a.form
	candidate := form.member()
	a.form = nil
	a.state = stateBoard
	if candidate.Name == "" {
		a.statusMsg = "Name is required"
		return a, nil
	}
	// The engine prompts on any existing-name match, including the entry
	// being edited, so route every match through the confirm modal.
	exists := false
	for _, m := range a.engine.Document().Pool {
		if m.Name == candidate.Name {
			exists = true
			break
		}
	}
	if exists {
		a.confirmThen(fmt.Sprintf("Member %q already exists. Overwrite their entry?", candidate.Name), func() error {
			_, err := a.engine.UpsertMember(candidate)
			return err
		})
		return a, nil
	}
	_, err := a.engine.UpsertMember(candidate)
	a.reportOp(err, fmt.Sprintf("%s saved", candidate.Name))
	a.refreshSidebar()
	return a, nil
}

type skillForm struct {
	member roster.Member
	ult    textinput.Model
	clan   textinput.Model
	onClan bool
}

func newSkillForm(member roster.Member) *skillForm {
	ult := textinput.New()
	ult.Placeholder = "绝技"
	ult.SetValue(member.Ult)
	ult.Focus()
	clan := textinput.New()
	clan.Placeholder = "帮会技"
	clan.SetValue(member.Clan)
	return &skillForm{member: member, ult: ult, clan: clan}
}

func (a *App) updateSkillForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := a.skillForm
	if form == nil {
		a.state = stateBoard
		return a, nil
	}
	switch msg.String() {
	case "esc":
		a.skillForm = nil
		a.state = stateBoard
		return a, nil
	case "tab", "up", "down":
		form.onClan = !form.onClan
		if form.onClan {
			form.ult.Blur()
			form.clan.Focus()
		} else {
			form.clan.Blur()
			form.ult.Focus()
		}
		return a, nil
	case "enter":
		if !form.onClan {
			form.onClan = true
			form.ult.Blur()
			form.clan.Focus()
			return a, nil
		}
		err := a.engine.UpdateMemberSkills(form.member.ID,
			strings.TrimSpace(form.ult.Value()),
			strings.TrimSpace(form.clan.Value()))
		a.skillForm = nil
		a.state = stateBoard
		a.reportOp(err, fmt.Sprintf("%s skills updated", form.member.Name))
		a.refreshSidebar()
		return a, nil
	}
	var cmd tea.Cmd
	if form.onClan {
		form.clan, cmd = form.clan.Update(msg)
	} else {
		form.ult, cmd = form.ult.Update(msg)
	}
	return a, cmd
}

type importForm struct {
	box textarea.Model
}

func newImportForm() *importForm {
	box := textarea.New()
	box.Placeholder = "姓名 职业 [绝技] [帮会技] [备注] — one member per line"
	box.SetHeight(12)
	box.Focus()
	return &importForm{box: box}
}

func (a *App) updateImportForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := a.importBox
	if form == nil {
		a.state = stateBoard
		return a, nil
	}
	switch msg.String() {
	case "esc":
		a.importBox = nil
		a.state = stateBoard
		return a, nil
	case "ctrl+s":
		added, err := a.engine.BatchImport(form.box.Value())
		a.importBox = nil
		a.state = stateBoard
		a.reportOp(err, fmt.Sprintf("Import done · %d new member(s)", added))
		a.refreshSidebar()
		return a, nil
	}
	var cmd tea.Cmd
	form.box, cmd = form.box.Update(msg)
	return a, cmd
}

type catalogForm struct {
	ult    textinput.Model
	clan   textinput.Model
	colors map[string]string
	onClan bool
}

func newCatalogForm(cfg *roster.GameConfig) *catalogForm {
	ult := textinput.New()
	ult.Placeholder = "绝技 catalog, comma separated"
	ult.SetValue(strings.Join(cfg.UltSkills, ","))
	ult.CharLimit = 512
	ult.Focus()
	clan := textinput.New()
	clan.Placeholder = "帮会技 catalog, comma separated"
	clan.SetValue(strings.Join(cfg.ClanSkills, ","))
	clan.CharLimit = 512
	return &catalogForm{ult: ult, clan: clan, colors: cfg.ProfessionColors}
}

func splitCatalog(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (a *App) updateCatalogForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := a.catalog
	if form == nil {
		a.state = stateBoard
		return a, nil
	}
	switch msg.String() {
	case "esc":
		a.catalog = nil
		a.state = stateBoard
		return a, nil
	case "tab", "up", "down":
		form.onClan = !form.onClan
		if form.onClan {
			form.ult.Blur()
			form.clan.Focus()
		} else {
			form.clan.Blur()
			form.ult.Focus()
		}
		return a, nil
	case "ctrl+r":
		err := a.engine.ResetConfig()
		a.catalog = nil
		a.state = stateBoard
		a.reportOp(err, "Catalogs reset to defaults")
		return a, nil
	case "enter":
		err := a.engine.UpdateConfig(splitCatalog(form.ult.Value()), splitCatalog(form.clan.Value()), form.colors)
		a.catalog = nil
		a.state = stateBoard
		a.reportOp(err, "Catalogs updated")
		return a, nil
	}
	var cmd tea.Cmd
	if form.onClan {
		form.clan, cmd = form.clan.Update(msg)
	} else {
		form.ult, cmd = form.ult.Update(msg)
	}
	return a, cmd
}
