// internal/roster/types.go
//
// The persisted document model for the roster board. The whole application
// state is one AppData tree: a flat member pool plus a Groups → Squads → Slots
// hierarchy. Slots reference pool members by id only; they never own them.

package roster

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

// SkillNone is the catalog sentinel meaning "no skill selected". Both skill
// catalogs always contain it, and it is the default for omitted skill fields
// everywhere.
const SkillNone = "无"

// DefaultSlotCount is how many slots a freshly created squad carries.
const DefaultSlotCount = 6

// Member is one roster entry in the pool, independent of any assignment.
// ID is assigned at creation and never changes; Name is the display key and
// is conventionally unique but not enforced as such.
type Member struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Profession string `json:"profession"`
	Ult        string `json:"ult"`
	Clan       string `json:"clan"`
	Note       string `json:"note,omitempty"`
}

// Slot is a single addressable position in a squad. MemberID is a weak
// reference into the pool; the empty string means the slot is open.
// Note is a legacy per-slot field superseded by Member.Note: it must
// round-trip when present in older documents but nothing writes it anymore.
type Slot struct {
	ID       string `json:"id"`
	MemberID string `json:"memberId"`
	Note     string `json:"note,omitempty"`
}

// Occupied reports whether the slot currently holds a member reference.
func (s Slot) Occupied() bool {
	return s.MemberID != ""
}

// Squad is an ordered run of slots under a group.
type Squad struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slots []Slot `json:"slots"`
}

// Group is an ordered run of squads with display attributes. Theme is a
// legacy combined "strategy(color)" descriptor kept for backward-compatible
// reads; Color and Strategy are the explicit fields new writes use. NewLine
// is a layout hint: the group starts a new visual row.
type Group struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Theme    string  `json:"theme,omitempty"`
	Color    string  `json:"color,omitempty"`
	Strategy string  `json:"strategy,omitempty"`
	NewLine  bool    `json:"newLine,omitempty"`
	Squads   []Squad `json:"squads"`
}

// GameConfig is the mutable catalog of valid skill values and profession
// colors. Absent professions fall back to the built-in color map.
type GameConfig struct {
	UltSkills        []string          `json:"ultSkills"`
	ClanSkills       []string          `json:"clanSkills"`
	ProfessionColors map[string]string `json:"professionColors,omitempty"`
}

// AppData is the root persisted document. A nil GameConfig means "use
// built-in defaults"; EnsureConfig fills it in at load time.
type AppData struct {
	Pool       []Member    `json:"pool"`
	Groups     []Group     `json:"groups"`
	GameConfig *GameConfig `json:"gameConfig,omitempty"`
}

// NewID generates an opaque entity identifier: UUIDv4 bytes encoded as
// unpadded lowercase base32, 26 characters, safe for keys and file names.
func NewID() string {
	raw := uuid.New()
	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw[:])
	return strings.ToLower(encoded)
}

// NewSlot constructs an empty slot with a fresh id.
func NewSlot() Slot {
	return Slot{ID: NewID()}
}

// NewSquad constructs a squad with the given name and slotCount fresh empty
// slots. A non-positive slotCount falls back to DefaultSlotCount.
func NewSquad(name string, slotCount int) Squad {
	if slotCount <= 0 {
		slotCount = DefaultSlotCount
	}
	slots := make([]Slot, 0, slotCount)
	for i := 0; i < slotCount; i++ {
		slots = append(slots, NewSlot())
	}
	return Squad{ID: NewID(), Name: name, Slots: slots}
}

// NewGroup constructs a group with a fresh id and no squads.
func NewGroup(name string) Group {
	return Group{
		ID:    NewID(),
		Name:  name,
		Color: defaultGroupColor,
	}
}

// NewMember constructs a pool entry with a fresh id. Empty skill fields are
// normalized to the sentinel.
func NewMember(name, profession, ult, clan, note string) Member {
	if strings.TrimSpace(ult) == "" {
		ult = SkillNone
	}
	if strings.TrimSpace(clan) == "" {
		clan = SkillNone
	}
	return Member{
		ID:         NewID(),
		Name:       name,
		Profession: profession,
		Ult:        ult,
		Clan:       clan,
		Note:       note,
	}
}

// FindMember returns the pool entry with the given id.
func (d AppData) FindMember(id string) (Member, bool) {
	for _, m := range d.Pool {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// SlotAt resolves a positional slot reference against the hierarchy.
// Positional indexes are only valid transiently, within a single operation;
// persisted addressing always goes through slot ids.
func (d *AppData) SlotAt(ref SlotRef) (*Slot, bool) {
	if ref.Group < 0 || ref.Group >= len(d.Groups) {
		return nil, false
	}
	group := &d.Groups[ref.Group]
	if ref.Squad < 0 || ref.Squad >= len(group.Squads) {
		return nil, false
	}
	squad := &group.Squads[ref.Squad]
	if ref.Slot < 0 || ref.Slot >= len(squad.Slots) {
		return nil, false
	}
	return &squad.Slots[ref.Slot], true
}

// SlotRef addresses one slot by position during a single operation.
type SlotRef struct {
	Group int
	Squad int
	Slot  int
}
