package migration

import "sort"

// Sort returns a new slice sorted by ascending version. The sort is stable
// so later registrations of an equal version stay behind earlier ones.
func Sort(migrations []Migration) []Migration {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})

	return sorted
}
