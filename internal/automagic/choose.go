package automagic

import (
	"sort"

	"github.com/vk/memscope/internal/config"
)

// Choose filters the catalog down to the resolvers applicable to the given
// requirement tree and orders them for execution: ascending priority, ties
// broken by name. The result is a pure function of its inputs, so repeated
// selection over the same catalog and tree is identical. An empty result is
// not an error; construction remains the gate for unmet requirements.
func Choose(catalog []Automagic, req *config.Requirement) []Automagic {
	selected := make([]Automagic, 0, len(catalog))
	for _, a := range catalog {
		if a.Applicable(req) {
			selected = append(selected, a)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Priority() != selected[j].Priority() {
			return selected[i].Priority() < selected[j].Priority()
		}
		return selected[i].Name() < selected[j].Name()
	})
	return selected
}
