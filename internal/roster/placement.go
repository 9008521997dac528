// internal/roster/placement.go
//
// The placement protocol. Two session states, no pointers held across
// operations: Idle (nothing staged) and Armed (one member staged by a select
// action). Placing a member anywhere first clears all of its previous
// occurrences, so a member id can never appear in two slots. Drag
// payloads are transient: an abandoned drag discards the payload with no
// data-side effect.

package roster

import "fmt"

// DragSource tells a drop how to treat the payload.
type DragSource int

const (
	// DragFromSidebar carries an unassigned pool member; dropping it
	// overwrites the target slot (the displaced occupant becomes
	// unassigned).
	DragFromSidebar DragSource = iota
	// DragFromSlot relocates an occupied slot; dropping it swaps the two
	// slots atomically.
	DragFromSlot
)

// DragPayload is the transient descriptor produced by DragStart and consumed
// by Drop.
type DragPayload struct {
	Type     DragSource
	MemberID string
	Source   SlotRef // valid only when Type == DragFromSlot
}

// Armed returns the staged member id, or "" when the session is idle.
func (e *Engine) Armed() string {
	return e.armed
}

// SelectMember drives the Idle/Armed state machine: arming from idle,
// toggling off on a repeat selection, re-arming on a different member. An id
// with no pool entry is ignored, so a later placement can never write a
// reference the pool cannot resolve. State transitions never touch the
// document.
func (e *Engine) SelectMember(id string) {
	if e.armed == id {
		e.armed = ""
		return
	}
	if _, ok := e.data.FindMember(id); !ok {
		return
	}
	e.armed = id
}

// CancelSelection returns the session to Idle with no data-side effect.
func (e *Engine) CancelSelection() {
	e.armed = ""
}

// ClickSlot resolves a click on a slot against the current session state.
//
// Armed: the staged member is placed into the slot, unconditionally
// overwriting any previous occupant (who becomes unassigned, not swapped),
// and the session returns to Idle. Placing a member onto the slot it already
// occupies passes through the same clear-then-set path and is idempotent.
//
// Idle on an occupied slot: removal is offered through the confirmation
// capability; declining leaves everything untouched. Idle on an empty slot
// is a no-op.
func (e *Engine) ClickSlot(ref SlotRef) error {
	slot, ok := e.data.SlotAt(ref)
	if !ok {
		return fmt.Errorf("roster: no slot at %d/%d/%d", ref.Group, ref.Squad, ref.Slot)
	}
	if e.armed != "" {
		member := e.armed
		clearMemberSlots(e.data.Groups, member)
		slot.MemberID = member
		e.armed = ""
		return e.persist()
	}
	if !slot.Occupied() {
		return nil
	}
	name := slot.MemberID
	if m, ok := e.data.FindMember(slot.MemberID); ok {
		name = m.Name
	}
	if !e.confirm.Confirm(fmt.Sprintf("Remove %s from this slot?", name)) {
		return ErrDeclined
	}
	slot.MemberID = ""
	return e.persist()
}

// DragStart stages a drag payload. Sidebar payloads carry a pool member id;
// slot payloads snapshot the source position and its occupant. Nothing in
// the document changes yet.
func (e *Engine) DragStart(payload DragPayload) error {
	switch payload.Type {
	case DragFromSidebar:
		if _, ok := e.data.FindMember(payload.MemberID); !ok {
			return fmt.Errorf("roster: member %s not found", payload.MemberID)
		}
	case DragFromSlot:
		slot, ok := e.data.SlotAt(payload.Source)
		if !ok {
			return fmt.Errorf("roster: no slot at %d/%d/%d", payload.Source.Group, payload.Source.Squad, payload.Source.Slot)
		}
		if !slot.Occupied() {
			return fmt.Errorf("roster: cannot drag an empty slot")
		}
		payload.MemberID = slot.MemberID
	default:
		return fmt.Errorf("roster: unknown drag source %d", payload.Type)
	}
	e.drag = &payload
	return nil
}

// Dragging returns the staged payload, or nil when no drag is in flight.
func (e *Engine) Dragging() *DragPayload {
	if e.drag == nil {
		return nil
	}
	payload := *e.drag
	return &payload
}

// CancelDrag discards a staged payload with no state change.
func (e *Engine) CancelDrag() {
	e.drag = nil
}

// Drop consumes the staged payload against a target slot. A sidebar payload
// overwrites the target like a click-to-place. A slot payload swaps the two
// slots in one atomic update: the target's previous occupant (possibly none)
// moves into the source slot. Dropping a slot onto itself is a no-op swap.
// Without a staged payload Drop does nothing.
func (e *Engine) Drop(target SlotRef) error {
	payload := e.drag
	e.drag = nil
	if payload == nil {
		return nil
	}
	dst, ok := e.data.SlotAt(target)
	if !ok {
		return fmt.Errorf("roster: no slot at %d/%d/%d", target.Group, target.Squad, target.Slot)
	}
	switch payload.Type {
	case DragFromSidebar:
		clearMemberSlots(e.data.Groups, payload.MemberID)
		dst.MemberID = payload.MemberID
	case DragFromSlot:
		src, ok := e.data.SlotAt(payload.Source)
		if !ok {
			return fmt.Errorf("roster: drag source vanished")
		}
		src.MemberID, dst.MemberID = dst.MemberID, src.MemberID
	}
	return e.persist()
}
