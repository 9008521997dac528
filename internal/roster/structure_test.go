package roster

import (
	"errors"
	"testing"
)

func TestAddSquadNaming(t *testing.T) {
	engine, _ := newTestEngine(t, true)
	if err := engine.AddSquad(0); err != nil {
		t.Fatalf("add squad: %v", err)
	}
	doc := engine.Document()
	squads := doc.Groups[0].Squads
	if len(squads) != 2 {
		t.Fatalf("squad count = %d, want 2", len(squads))
	}
	if squads[1].Name != "第1组2队" {
		t.Fatalf("squad name = %q, want 第1组2队", squads[1].Name)
	}
	if len(squads[1].Slots) != DefaultSlotCount {
		t.Fatalf("new squad must get %d empty slots, got %d", DefaultSlotCount, len(squads[1].Slots))
	}
}

func TestRemoveLastSquadUnseatsMembers(t *testing.T) {
	engine, _ := newTestEngine(t, true)
	ids := seedMembers(t, engine, 1)
	engine.SelectMember(ids[0])
	if err := engine.ClickSlot(SlotRef{Group: 0, Squad: 0, Slot: 0}); err != nil {
		t.Fatalf("place: %v", err)
	}

	if err := engine.RemoveLastSquad(0); err != nil {
		t.Fatalf("remove squad: %v", err)
	}
	doc := engine.Document()
	if len(doc.Groups[0].Squads) != 0 {
		t.Fatalf("squad must be gone, got %d", len(doc.Groups[0].Squads))
	}
	unassigned := UnassignedMembers(doc)
	if len(unassigned) != 1 || unassigned[0].ID != ids[0] {
		t.Fatalf("the seated member must return to the pool, got %+v", unassigned)
	}

	// A group with no squads left is a no-op, not an error.
	if err := engine.RemoveLastSquad(0); err != nil {
		t.Fatalf("remove from empty group: %v", err)
	}
}

func TestRemoveLastSquadDeclined(t *testing.T) {
	engine, _ := newTestEngine(t, false)
	err := engine.RemoveLastSquad(0)
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("got %v, want ErrDeclined", err)
	}
	if got := len(engine.Document().Groups[0].Squads); got != 1 {
		t.Fatalf("declined removal must keep the squad, got %d", got)
	}
}

func TestAddGroupNaming(t *testing.T) {
	engine, _ := newTestEngine(t, true)
	if err := engine.AddGroup(); err != nil {
		t.Fatalf("add group: %v", err)
	}
	doc := engine.Document()
	if len(doc.Groups) != 2 {
		t.Fatalf("group count = %d, want 2", len(doc.Groups))
	}
	group := doc.Groups[1]
	if group.Name != "第2组" {
		t.Fatalf("group name = %q, want 第2组", group.Name)
	}
	if len(group.Squads) != 1 || group.Squads[0].Name != "第2组1队" {
		t.Fatalf("new group must get one starter squad, got %+v", group.Squads)
	}
}

func TestRemoveGroup(t *testing.T) {
	engine, _ := newTestEngine(t, true)
	ids := seedMembers(t, engine, 1)
	engine.SelectMember(ids[0])
	if err := engine.ClickSlot(SlotRef{Group: 0, Squad: 0, Slot: 0}); err != nil {
		t.Fatalf("place: %v", err)
	}

	if err := engine.RemoveGroup(0); err != nil {
		t.Fatalf("remove group: %v", err)
	}
	doc := engine.Document()
	if len(doc.Groups) != 0 {
		t.Fatalf("group count = %d, want 0", len(doc.Groups))
	}
	if got := len(doc.Pool); got != 1 {
		t.Fatalf("removing a group must never delete members, pool = %d", got)
	}
	if err := engine.RemoveGroup(0); err == nil {
		t.Fatalf("out-of-range index must be an error")
	}
}

func TestRemoveGroupDeclined(t *testing.T) {
	engine, _ := newTestEngine(t, false)
	err := engine.RemoveGroup(0)
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("got %v, want ErrDeclined", err)
	}
	if got := len(engine.Document().Groups); got != 1 {
		t.Fatalf("declined removal must keep the group, got %d", got)
	}
}

func TestGroupFieldEdits(t *testing.T) {
	engine, _ := newTestEngine(t, true)
	if err := engine.RenameGroup(0, "前锋"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := engine.SetGroupColor(0, "#00ff00"); err != nil {
		t.Fatalf("set color: %v", err)
	}
	if err := engine.SetGroupStrategy(0, "速攻"); err != nil {
		t.Fatalf("set strategy: %v", err)
	}
	if err := engine.SetGroupNewLine(0, true); err != nil {
		t.Fatalf("set new line: %v", err)
	}
	group := engine.Document().Groups[0]
	if group.Name != "前锋" || group.Color != "#00ff00" || group.Strategy != "速攻" || !group.NewLine {
		t.Fatalf("unexpected group after edits: %+v", group)
	}
}

func TestAddSlotGrowsSquad(t *testing.T) {
	engine, _ := newTestEngine(t, true)
	if err := engine.AddSlot(0, 0); err != nil {
		t.Fatalf("add slot: %v", err)
	}
	slots := engine.Document().Groups[0].Squads[0].Slots
	if len(slots) != DefaultSlotCount+1 {
		t.Fatalf("slot count = %d, want %d", len(slots), DefaultSlotCount+1)
	}
	if slots[len(slots)-1].Occupied() {
		t.Fatalf("a new slot must start empty")
	}
	if err := engine.AddSlot(0, 3); err == nil {
		t.Fatalf("out-of-range squad must be an error")
	}
}

func TestRemoveLastSlot(t *testing.T) {
	engine, _ := newTestEngine(t, true)
	if err := engine.RemoveLastSlot(0, 0); err != nil {
		t.Fatalf("remove empty trailing slot: %v", err)
	}
	if got := len(engine.Document().Groups[0].Squads[0].Slots); got != DefaultSlotCount-1 {
		t.Fatalf("slot count = %d, want %d", got, DefaultSlotCount-1)
	}
}

func TestRemoveLastSlotUnseatsOccupant(t *testing.T) {
	engine, _ := newTestEngine(t, true)
	ids := seedMembers(t, engine, 1)
	engine.SelectMember(ids[0])
	last := DefaultSlotCount - 1
	if err := engine.ClickSlot(SlotRef{Group: 0, Squad: 0, Slot: last}); err != nil {
		t.Fatalf("place: %v", err)
	}

	if err := engine.RemoveLastSlot(0, 0); err != nil {
		t.Fatalf("remove occupied trailing slot: %v", err)
	}
	doc := engine.Document()
	if got := len(doc.Groups[0].Squads[0].Slots); got != DefaultSlotCount-1 {
		t.Fatalf("slot count = %d, want %d", got, DefaultSlotCount-1)
	}
	unassigned := UnassignedMembers(doc)
	if len(unassigned) != 1 || unassigned[0].ID != ids[0] {
		t.Fatalf("the unseated member must return to the pool, got %+v", unassigned)
	}
}

func TestRemoveLastSlotDeclined(t *testing.T) {
	engine, _ := newTestEngine(t, false)
	ids := seedMembers(t, engine, 1)
	engine.SelectMember(ids[0])
	last := DefaultSlotCount - 1
	if err := engine.ClickSlot(SlotRef{Group: 0, Squad: 0, Slot: last}); err != nil {
		t.Fatalf("place: %v", err)
	}

	err := engine.RemoveLastSlot(0, 0)
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("got %v, want ErrDeclined", err)
	}
	if got := len(engine.Document().Groups[0].Squads[0].Slots); got != DefaultSlotCount {
		t.Fatalf("declined removal must keep the slot, got %d", got)
	}
}

func TestRenameSquad(t *testing.T) {
	engine, _ := newTestEngine(t, true)
	if err := engine.RenameSquad(0, 0, "先锋队"); err != nil {
		t.Fatalf("rename squad: %v", err)
	}
	if got := engine.Document().Groups[0].Squads[0].Name; got != "先锋队" {
		t.Fatalf("squad name = %q, want 先锋队", got)
	}
	if err := engine.RenameSquad(0, 5, "x"); err == nil {
		t.Fatalf("out-of-range squad must be an error")
	}
}
