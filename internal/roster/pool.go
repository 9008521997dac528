// internal/roster/pool.go
//
// Member pool transforms. These are the pure pieces of the engine: they take
// the current pool (and, for imports, the catalogs) and return updated
// values. Persistence and confirmation live in engine.go.

package roster

import "strings"

// findByName returns the index of the first pool entry with an exact,
// case-sensitive name match. Duplicate names with distinct ids are tolerated;
// first match wins, matching the original matching policy.
func findByName(pool []Member, name string) int {
	for i, m := range pool {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// mergeMember copies all candidate fields onto an existing entry, preserving
// its id.
func mergeMember(existing, candidate Member) Member {
	candidate.ID = existing.ID
	if strings.TrimSpace(candidate.Ult) == "" {
		candidate.Ult = SkillNone
	}
	if strings.TrimSpace(candidate.Clan) == "" {
		candidate.Clan = SkillNone
	}
	return candidate
}

// ReconcileSlots nulls out every slot reference that does not resolve to a
// member in validIDs. It touches nothing but memberId fields and returns
// how many references it cleared. Must run after any pool mutation that can
// remove ids.
func ReconcileSlots(groups []Group, validIDs map[string]struct{}) int {
	cleared := 0
	for gi := range groups {
		for si := range groups[gi].Squads {
			slots := groups[gi].Squads[si].Slots
			for li := range slots {
				if !slots[li].Occupied() {
					continue
				}
				if _, ok := validIDs[slots[li].MemberID]; !ok {
					slots[li].MemberID = ""
					cleared++
				}
			}
		}
	}
	return cleared
}

// poolIDs collects the set of valid member ids.
func poolIDs(pool []Member) map[string]struct{} {
	ids := make(map[string]struct{}, len(pool))
	for _, m := range pool {
		ids[m.ID] = struct{}{}
	}
	return ids
}

// clearMemberSlots nulls every slot currently referencing id, so a member
// never occupies two slots after the subsequent placement.
func clearMemberSlots(groups []Group, id string) {
	for gi := range groups {
		for si := range groups[gi].Squads {
			slots := groups[gi].Squads[si].Slots
			for li := range slots {
				if slots[li].MemberID == id {
					slots[li].MemberID = ""
				}
			}
		}
	}
}

// ImportRecord is one parsed batch-import line.
type ImportRecord struct {
	Name       string
	Profession string
	Ult        string
	Clan       string
	Note       string
}

// ParseImportLines tokenizes batch-import text: one record per line, fields
// separated by runs of whitespace, `name profession [ult] [clan] [note]`.
// Lines with fewer than two tokens are skipped, not errors. A note with
// spaces keeps its remaining tokens joined.
func ParseImportLines(text string) []ImportRecord {
	var records []ImportRecord
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		record := ImportRecord{
			Name:       fields[0],
			Profession: fields[1],
			Ult:        SkillNone,
			Clan:       SkillNone,
		}
		if len(fields) > 2 {
			record.Ult = fields[2]
		}
		if len(fields) > 3 {
			record.Clan = fields[3]
		}
		if len(fields) > 4 {
			record.Note = strings.Join(fields[4:], " ")
		}
		records = append(records, record)
	}
	return records
}

// applyImport merges parsed records into the pool. Existing entries (matched
// by name) keep their id and note unless the record carries a non-empty note;
// unknown entries are appended with fresh ids. Skill values missing from the
// catalogs are appended to them — the config mutation is part of the result,
// never silently dropped. Returns the updated pool and how many entries were
// newly added.
func applyImport(pool []Member, cfg *GameConfig, records []ImportRecord) ([]Member, int) {
	added := 0
	for _, record := range records {
		if idx := findByName(pool, record.Name); idx >= 0 {
			pool[idx].Profession = record.Profession
			pool[idx].Ult = record.Ult
			pool[idx].Clan = record.Clan
			if record.Note != "" {
				pool[idx].Note = record.Note
			}
		} else {
			pool = append(pool, NewMember(record.Name, record.Profession, record.Ult, record.Clan, record.Note))
			added++
		}
		if record.Ult != SkillNone && !catalogContains(cfg.UltSkills, record.Ult) {
			cfg.UltSkills = append(cfg.UltSkills, record.Ult)
		}
		if record.Clan != SkillNone && !catalogContains(cfg.ClanSkills, record.Clan) {
			cfg.ClanSkills = append(cfg.ClanSkills, record.Clan)
		}
	}
	return pool, added
}
