// internal/roster/structure.go
//
// Structural edits on the Groups → Squads tree. Removals can strip members
// of their assignment (they return to the unassigned pool, never deleted),
// so the destructive ones require confirmation.

package roster

import "fmt"

// AddSquad appends a squad to the group, named after the group and its new
// position, with a fresh run of empty slots.
func (e *Engine) AddSquad(groupIdx int) error {
	if groupIdx < 0 || groupIdx >= len(e.data.Groups) {
		return fmt.Errorf("roster: no group at %d", groupIdx)
	}
	group := &e.data.Groups[groupIdx]
	name := fmt.Sprintf("%s%d队", group.Name, len(group.Squads)+1)
	group.Squads = append(group.Squads, NewSquad(name, DefaultSlotCount))
	return e.persist()
}

// RemoveLastSquad drops the group's trailing squad after confirmation, since
// any members seated in it lose their assignment permanently. A group with
// no squads is a no-op.
func (e *Engine) RemoveLastSquad(groupIdx int) error {
	if groupIdx < 0 || groupIdx >= len(e.data.Groups) {
		return fmt.Errorf("roster: no group at %d", groupIdx)
	}
	group := &e.data.Groups[groupIdx]
	if len(group.Squads) == 0 {
		return nil
	}
	last := group.Squads[len(group.Squads)-1]
	if !e.confirm.Confirm(fmt.Sprintf("Remove squad %q? Seated members return to the pool.", last.Name)) {
		return ErrDeclined
	}
	group.Squads = group.Squads[:len(group.Squads)-1]
	e.logInfo("Structure · squad %s removed from %s", last.Name, group.Name)
	return e.persist()
}

// AddSlot appends an empty slot to the squad, growing it past the default
// count.
func (e *Engine) AddSlot(groupIdx, squadIdx int) error {
	squad, err := e.squadAt(groupIdx, squadIdx)
	if err != nil {
		return err
	}
	squad.Slots = append(squad.Slots, NewSlot())
	return e.persist()
}

// RemoveLastSlot drops the squad's trailing slot. An occupied trailing slot
// needs confirmation, since its member loses the assignment. A squad with no
// slots is a no-op.
func (e *Engine) RemoveLastSlot(groupIdx, squadIdx int) error {
	squad, err := e.squadAt(groupIdx, squadIdx)
	if err != nil {
		return err
	}
	if len(squad.Slots) == 0 {
		return nil
	}
	last := squad.Slots[len(squad.Slots)-1]
	if last.Occupied() {
		name := last.MemberID
		if m, ok := e.data.FindMember(last.MemberID); ok {
			name = m.Name
		}
		if !e.confirm.Confirm(fmt.Sprintf("Remove this slot? %s returns to the pool.", name)) {
			return ErrDeclined
		}
	}
	squad.Slots = squad.Slots[:len(squad.Slots)-1]
	return e.persist()
}

// AddGroup appends a new group with a generated name and one starter squad.
func (e *Engine) AddGroup() error {
	name := fmt.Sprintf("第%d组", len(e.data.Groups)+1)
	group := NewGroup(name)
	group.Squads = append(group.Squads, NewSquad(fmt.Sprintf("%s1队", name), DefaultSlotCount))
	e.data.Groups = append(e.data.Groups, group)
	return e.persist()
}

// RemoveGroup removes a group after confirmation. Every member seated in any
// of its squads becomes unassigned.
func (e *Engine) RemoveGroup(idx int) error {
	if idx < 0 || idx >= len(e.data.Groups) {
		return fmt.Errorf("roster: no group at %d", idx)
	}
	name := e.data.Groups[idx].Name
	if !e.confirm.Confirm(fmt.Sprintf("Remove group %q and all of its squads?", name)) {
		return ErrDeclined
	}
	e.data.Groups = append(e.data.Groups[:idx], e.data.Groups[idx+1:]...)
	e.logInfo("Structure · group %s removed", name)
	return e.persist()
}

// RenameGroup replaces the group's display name.
func (e *Engine) RenameGroup(idx int, name string) error {
	return e.updateGroup(idx, func(g *Group) { g.Name = name })
}

// SetGroupColor replaces the group's explicit hex color. The legacy theme
// field is left alone.
func (e *Engine) SetGroupColor(idx int, color string) error {
	return e.updateGroup(idx, func(g *Group) { g.Color = color })
}

// SetGroupStrategy replaces the group's strategy tag.
func (e *Engine) SetGroupStrategy(idx int, strategy string) error {
	return e.updateGroup(idx, func(g *Group) { g.Strategy = strategy })
}

// SetGroupNewLine toggles the row-break layout hint.
func (e *Engine) SetGroupNewLine(idx int, newLine bool) error {
	return e.updateGroup(idx, func(g *Group) { g.NewLine = newLine })
}

// RenameSquad replaces a squad's display label.
func (e *Engine) RenameSquad(groupIdx, squadIdx int, name string) error {
	squad, err := e.squadAt(groupIdx, squadIdx)
	if err != nil {
		return err
	}
	squad.Name = name
	return e.persist()
}

func (e *Engine) squadAt(groupIdx, squadIdx int) (*Squad, error) {
	if groupIdx < 0 || groupIdx >= len(e.data.Groups) {
		return nil, fmt.Errorf("roster: no group at %d", groupIdx)
	}
	group := &e.data.Groups[groupIdx]
	if squadIdx < 0 || squadIdx >= len(group.Squads) {
		return nil, fmt.Errorf("roster: no squad at %d/%d", groupIdx, squadIdx)
	}
	return &group.Squads[squadIdx], nil
}

// updateGroup applies a direct field replacement. No cross-entity cascading.
func (e *Engine) updateGroup(idx int, apply func(*Group)) error {
	if idx < 0 || idx >= len(e.data.Groups) {
		return fmt.Errorf("roster: no group at %d", idx)
	}
	apply(&e.data.Groups[idx])
	return e.persist()
}
