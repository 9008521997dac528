package roster

// Deep-copy helpers for the document tree. The engine mutates its own copy in
// place; everything handed across the package boundary is cloned first so
// callers can never alias engine-owned nodes.

func cloneMembers(values []Member) []Member {
	if len(values) == 0 {
		return nil
	}
	out := make([]Member, len(values))
	copy(out, values)
	return out
}

func cloneSlots(values []Slot) []Slot {
	if len(values) == 0 {
		return nil
	}
	out := make([]Slot, len(values))
	copy(out, values)
	return out
}

func cloneSquads(values []Squad) []Squad {
	if len(values) == 0 {
		return nil
	}
	out := make([]Squad, len(values))
	for i, squad := range values {
		squad.Slots = cloneSlots(squad.Slots)
		out[i] = squad
	}
	return out
}

func cloneGroups(values []Group) []Group {
	if len(values) == 0 {
		return nil
	}
	out := make([]Group, len(values))
	for i, group := range values {
		group.Squads = cloneSquads(group.Squads)
		out[i] = group
	}
	return out
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func cloneColorMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy of the config.
func (c *GameConfig) Clone() *GameConfig {
	if c == nil {
		return nil
	}
	return &GameConfig{
		UltSkills:        cloneStrings(c.UltSkills),
		ClanSkills:       cloneStrings(c.ClanSkills),
		ProfessionColors: cloneColorMap(c.ProfessionColors),
	}
}

// Clone returns a deep copy of the whole document.
func (d AppData) Clone() AppData {
	return AppData{
		Pool:       cloneMembers(d.Pool),
		Groups:     cloneGroups(d.Groups),
		GameConfig: d.GameConfig.Clone(),
	}
}
