package steps

import (
	"sort"

	"github.com/yungbote/navgraph/internal/domain/navigation"
)

// rankRefs puts store rows into final rank order: the anchor and repeated refs
// are dropped, rows are ordered by ascending distance then (type, id), and the
// list is cut to limit. Rows may arrive in any order.
func rankRefs(anchor navigation.EntityRef, rows []navigation.RankedRef, limit int) []navigation.RankedRef {
	seen := make(map[navigation.EntityRef]struct{}, len(rows))
	out := make([]navigation.RankedRef, 0, len(rows))
	for _, r := range rows {
		if r.EntityRef == anchor {
			continue
		}
		if _, dup := seen[r.EntityRef]; dup {
			continue
		}
		seen[r.EntityRef] = struct{}{}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.EntityType != b.EntityType {
			return a.EntityType < b.EntityType
		}
		return a.EntityID < b.EntityID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
