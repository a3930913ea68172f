package activity

import (
	"slices"

	"github.com/abhisek/lessonarcade/internal/lessonplan"
)

// identity leaves every slice in its input order.
type identity struct{}

func (identity) Shuffle(int, func(i, j int)) {}

// reverser reverses every slice it is asked to shuffle.
type reverser struct{}

func (reverser) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func items(ids ...int) []lessonplan.ChronologyItem {
	out := make([]lessonplan.ChronologyItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, lessonplan.ChronologyItem{ID: id, Text: "event"})
	}
	return out
}

func ids(in []lessonplan.ChronologyItem) []int {
	out := make([]int, 0, len(in))
	for _, it := range in {
		out = append(out, it.ID)
	}
	return out
}

func sortedIDs(in []lessonplan.ChronologyItem) []int {
	out := ids(in)
	slices.Sort(out)
	return out
}

func concepts(n int) []lessonplan.FastestFingerConcept {
	out := make([]lessonplan.FastestFingerConcept, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, lessonplan.FastestFingerConcept{
			ID:       i,
			Name:     string(rune('A' + i - 1)),
			Keywords: []string{"k" + string(rune('a'+i-1))},
		})
	}
	return out
}
