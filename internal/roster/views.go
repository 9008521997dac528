// internal/roster/views.go
//
// Read-only projections over the document. All three are pure functions,
// recomputed on demand; none of them mutate or retain their input.

package roster

import "sort"

// UnassignedMembers returns the pool entries that do not occupy any slot,
// in pool order.
func UnassignedMembers(data AppData) []Member {
	assigned := map[string]struct{}{}
	for _, group := range data.Groups {
		for _, squad := range group.Squads {
			for _, slot := range squad.Slots {
				if slot.Occupied() {
					assigned[slot.MemberID] = struct{}{}
				}
			}
		}
	}
	var out []Member
	for _, m := range data.Pool {
		if _, ok := assigned[m.ID]; !ok {
			out = append(out, m)
		}
	}
	return out
}

// ProfessionCount is one occupancy bucket.
type ProfessionCount struct {
	Profession string
	Count      int
}

// Occupancy summarizes slot assignment across the whole board.
type Occupancy struct {
	Total        int
	ByProfession []ProfessionCount
}

// OccupancyStats counts assigned members overall and per profession. Buckets
// are ordered by descending count; ties keep the order professions were
// first encountered in.
func OccupancyStats(data AppData) Occupancy {
	counts := map[string]int{}
	var order []string
	total := 0
	for _, group := range data.Groups {
		for _, squad := range group.Squads {
			for _, slot := range squad.Slots {
				if !slot.Occupied() {
					continue
				}
				member, ok := data.FindMember(slot.MemberID)
				if !ok {
					continue
				}
				total++
				if _, seen := counts[member.Profession]; !seen {
					order = append(order, member.Profession)
				}
				counts[member.Profession]++
			}
		}
	}
	buckets := make([]ProfessionCount, 0, len(order))
	for _, profession := range order {
		buckets = append(buckets, ProfessionCount{Profession: profession, Count: counts[profession]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return Occupancy{Total: total, ByProfession: buckets}
}

// GroupRows partitions the ordered group sequence into visual rows. A group
// with the NewLine hint starts a new row, except the very first group, which
// never forces an empty leading row. Order is preserved within and across
// rows.
func GroupRows(groups []Group) [][]Group {
	var rows [][]Group
	var current []Group
	for i, group := range groups {
		if group.NewLine && i > 0 && len(current) > 0 {
			rows = append(rows, current)
			current = nil
		}
		current = append(current, group)
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}
	return rows
}
