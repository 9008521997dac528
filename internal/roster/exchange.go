// internal/roster/exchange.go
//
// Whole-document export/import. The exchange format is the persisted
// document pretty-printed; import validates shape before any mutation and
// replaces the document wholesale only after confirmation.

package roster

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidExchange reports an exchange payload that is not a roster
// document. Nothing is mutated when it is returned.
var ErrInvalidExchange = errors.New("roster: invalid exchange format")

// ExportDocument serializes the current document as indented JSON with a
// trailing newline, suitable for an exchange file.
func (e *Engine) ExportDocument() ([]byte, error) {
	encoded, err := json.MarshalIndent(e.data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("roster: encode exchange: %w", err)
	}
	return append(encoded, '\n'), nil
}

// ParseExchange validates and decodes an exchange payload. The minimal
// contract: `pool` and `groups` must both be present and be sequences. Any
// other shape is rejected before touching anything.
func ParseExchange(raw []byte) (AppData, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		return AppData{}, fmt.Errorf("%w: %v", ErrInvalidExchange, err)
	}
	for _, key := range []string{"pool", "groups"} {
		value, ok := shape[key]
		if !ok {
			return AppData{}, fmt.Errorf("%w: missing %s", ErrInvalidExchange, key)
		}
		var sequence []json.RawMessage
		if err := json.Unmarshal(value, &sequence); err != nil {
			return AppData{}, fmt.Errorf("%w: %s is not a sequence", ErrInvalidExchange, key)
		}
	}
	var doc AppData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return AppData{}, fmt.Errorf("%w: %v", ErrInvalidExchange, err)
	}
	EnsureConfig(&doc)
	return doc, nil
}

// ImportExchange replaces the current document with a parsed exchange
// payload. Validation happens before the destructive-overwrite confirmation;
// a reconcile pass then silently clears any dangling references an external
// edit may have introduced (internally consistent documents come through
// unchanged). Ids are preserved as-is.
func (e *Engine) ImportExchange(raw []byte) error {
	doc, err := ParseExchange(raw)
	if err != nil {
		return err
	}
	if !e.confirm.Confirm("Replace the current board with the imported file?") {
		return ErrDeclined
	}
	ReconcileSlots(doc.Groups, poolIDs(doc.Pool))
	e.data = doc
	e.armed = ""
	e.drag = nil
	e.logInfo("Exchange · document imported (%d member(s), %d group(s))", len(doc.Pool), len(doc.Groups))
	return e.persist()
}
