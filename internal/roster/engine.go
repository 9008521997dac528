// internal/roster/engine.go
//
// Engine owns the in-memory AppData document and is the only writer to it.
// Every mutating operation is a synchronous transform followed by a
// synchronous persist; a failed persist is surfaced as a warning error and
// logged, but the in-memory document is the source of truth for the session
// and is never rolled back. Destructive operations route through an injected
// confirmation capability so the data layer never blocks on UI concerns.

package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/The-Muster/internal/logbook"
	"github.com/kingrea/The-Muster/internal/storage"
)

// ErrDeclined reports that the operator declined a confirmation prompt. The
// document is untouched when it is returned.
var ErrDeclined = errors.New("roster: operation declined")

// Confirmer is the injected confirmation capability for destructive
// operations. Interactive frontends prompt; tests stub a fixed answer.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a plain function to the Confirmer interface.
type ConfirmFunc func(message string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// Recompressor shrinks a backdrop value before it is persisted. The real
// implementation is an external image encoder; the default keeps the value
// as-is.
type Recompressor interface {
	Recompress(value string) (string, error)
}

// RecompressFunc adapts a plain function to the Recompressor interface.
type RecompressFunc func(value string) (string, error)

// Recompress implements Recompressor.
func (f RecompressFunc) Recompress(value string) (string, error) { return f(value) }

// Engine is the roster engine facade.
type Engine struct {
	store      storage.Store
	confirm    Confirmer
	log        *logbook.Logbook
	recompress Recompressor

	data     AppData
	backdrop string
	armed    string
	drag     *DragPayload
}

// EngineOption customizes Engine construction.
type EngineOption func(*Engine)

// WithLogbook attaches a logbook for warnings and operation notes.
func WithLogbook(lb *logbook.Logbook) EngineOption {
	return func(e *Engine) {
		e.log = lb
	}
}

// WithRecompressor overrides the backdrop recompression collaborator.
func WithRecompressor(r Recompressor) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.recompress = r
		}
	}
}

// NewEngine builds an engine over the given store and confirmation
// capability. The engine starts on the built-in default document; call Load
// to replace it with persisted state.
func NewEngine(store storage.Store, confirm Confirmer, opts ...EngineOption) *Engine {
	engine := &Engine{
		store:   store,
		confirm: confirm,
		data:    DefaultDocument(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(engine)
		}
	}
	return engine
}

// DefaultDocument is the document used when nothing has been persisted yet:
// an empty pool and one starter group with a single squad.
func DefaultDocument() AppData {
	group := NewGroup("第1组")
	group.Squads = append(group.Squads, NewSquad("第1组1队", DefaultSlotCount))
	data := AppData{Groups: []Group{group}}
	EnsureConfig(&data)
	return data
}

// Load replaces the in-memory document with persisted state. Missing or
// corrupt state falls back to the default document — never a fatal error.
func (e *Engine) Load() {
	raw, err := e.store.Get(storage.KeyDocument)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		e.data = DefaultDocument()
	case err != nil:
		e.logWarn("Document load failed, starting fresh: %v", err)
		e.data = DefaultDocument()
	default:
		var doc AppData
		if err := json.Unmarshal(raw, &doc); err != nil {
			e.logWarn("Document is corrupt, starting fresh: %v", err)
			e.data = DefaultDocument()
		} else {
			e.data = doc
		}
	}
	EnsureConfig(&e.data)

	if raw, err := e.store.Get(storage.KeyBackdrop); err == nil {
		e.backdrop = string(raw)
	}
}

// Document returns a deep copy of the current document.
func (e *Engine) Document() AppData {
	return e.data.Clone()
}

// Config returns a deep copy of the active catalogs.
func (e *Engine) Config() *GameConfig {
	return e.data.GameConfig.Clone()
}

// persist writes the whole document to the store. The in-memory state stays
// authoritative whether or not the write lands.
func (e *Engine) persist() error {
	raw, err := json.Marshal(e.data)
	if err != nil {
		return fmt.Errorf("roster: encode document: %w", err)
	}
	if err := e.store.Put(storage.KeyDocument, raw); err != nil {
		e.logWarn("Document persist failed: %v", err)
		return fmt.Errorf("roster: persist document: %w", err)
	}
	return nil
}

// UpsertMember adds a pool entry or, after confirmation, overwrites the
// first existing entry with the same name. The existing id survives an
// overwrite; a new entry gets a fresh one.
func (e *Engine) UpsertMember(candidate Member) (Member, error) {
	name := strings.TrimSpace(candidate.Name)
	if name == "" {
		return Member{}, fmt.Errorf("roster: member name is required")
	}
	candidate.Name = name
	if idx := findByName(e.data.Pool, name); idx >= 0 {
		if !e.confirm.Confirm(fmt.Sprintf("Member %q already exists. Overwrite their entry?", name)) {
			return Member{}, ErrDeclined
		}
		e.data.Pool[idx] = mergeMember(e.data.Pool[idx], candidate)
		e.logInfo("Pool · %s updated", name)
		return e.data.Pool[idx], e.persist()
	}
	member := NewMember(name, candidate.Profession, candidate.Ult, candidate.Clan, candidate.Note)
	e.data.Pool = append(e.data.Pool, member)
	e.logInfo("Pool · %s added", name)
	return member, e.persist()
}

// DeleteMember removes a pool entry and reconciles every slot that
// referenced it. Deleting a member never deletes slots, only clears
// their references.
func (e *Engine) DeleteMember(id string) error {
	idx := -1
	for i, m := range e.data.Pool {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("roster: member %s not found", id)
	}
	name := e.data.Pool[idx].Name
	e.data.Pool = append(e.data.Pool[:idx], e.data.Pool[idx+1:]...)
	cleared := ReconcileSlots(e.data.Groups, poolIDs(e.data.Pool))
	if e.armed == id {
		e.armed = ""
	}
	e.logInfo("Pool · %s removed (%d slot(s) cleared)", name, cleared)
	return e.persist()
}

// UpdateMemberSkills is the quick editor: it rewrites a member's skill tags
// in place. Values outside the catalogs are tolerated.
func (e *Engine) UpdateMemberSkills(id, ult, clan string) error {
	for i := range e.data.Pool {
		if e.data.Pool[i].ID != id {
			continue
		}
		if strings.TrimSpace(ult) == "" {
			ult = SkillNone
		}
		if strings.TrimSpace(clan) == "" {
			clan = SkillNone
		}
		e.data.Pool[i].Ult = ult
		e.data.Pool[i].Clan = clan
		return e.persist()
	}
	return fmt.Errorf("roster: member %s not found", id)
}

// BatchImport merges whitespace-tokenized records into the pool and
// auto-discovers unknown skill values into the catalogs. Returns how many
// members were newly added.
func (e *Engine) BatchImport(text string) (int, error) {
	records := ParseImportLines(text)
	if len(records) == 0 {
		return 0, nil
	}
	pool, added := applyImport(e.data.Pool, e.data.GameConfig, records)
	e.data.Pool = pool
	e.logInfo("Import · %d record(s), %d new member(s)", len(records), added)
	return added, e.persist()
}

// UpdateConfig replaces both skill catalogs and the profession color map
// wholesale. In-use values missing from the new catalogs are tolerated;
// member data is never touched. The sentinel survives any edit.
func (e *Engine) UpdateConfig(ultSkills, clanSkills []string, professionColors map[string]string) error {
	e.data.GameConfig = &GameConfig{
		UltSkills:        ensureSentinel(ultSkills),
		ClanSkills:       ensureSentinel(clanSkills),
		ProfessionColors: cloneColorMap(professionColors),
	}
	return e.persist()
}

// ResetConfig restores the built-in catalogs and color map.
func (e *Engine) ResetConfig() error {
	e.data.GameConfig = DefaultGameConfig()
	return e.persist()
}

// SetBackdrop stores the backdrop value under its own key, after a
// best-effort recompression pass. The value is used for the current session
// even when the persist step fails (quota and the like); the failure comes
// back as a warning.
func (e *Engine) SetBackdrop(value string) error {
	if e.recompress != nil {
		if shrunk, err := e.recompress.Recompress(value); err == nil {
			value = shrunk
		} else {
			e.logWarn("Backdrop recompression failed, storing original: %v", err)
		}
	}
	e.backdrop = value
	if err := e.store.Put(storage.KeyBackdrop, []byte(value)); err != nil {
		e.logWarn("Backdrop persist failed: %v", err)
		return fmt.Errorf("roster: persist backdrop: %w", err)
	}
	return nil
}

// Backdrop returns the current session backdrop value.
func (e *Engine) Backdrop() string {
	return e.backdrop
}

// ClearBackdrop removes the backdrop value.
func (e *Engine) ClearBackdrop() error {
	e.backdrop = ""
	if err := e.store.Delete(storage.KeyBackdrop); err != nil {
		return fmt.Errorf("roster: clear backdrop: %w", err)
	}
	return nil
}

func (e *Engine) logInfo(format string, args ...any) {
	if e.log == nil {
		return
	}
	e.log.Info(format, args...)
}

func (e *Engine) logWarn(format string, args ...any) {
	if e.log == nil {
		return
	}
	e.log.Warn(format, args...)
}
