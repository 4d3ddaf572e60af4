package container

// pair is a (key, value) tuple consumed by group.
type pair[K comparable, V any] struct {
	key   K
	value V
}

// group buckets values by key. For each pair in input order the value is
// appended to the list at its key, creating the list on first encounter.
// Duplicate keys are expected; all values for a repeated key are retained in
// arrival order. Pure: no I/O, input is never mutated.
func group[K comparable, V any](pairs []pair[K, V]) map[K][]V {
	grouped := make(map[K][]V, len(pairs))
	for _, p := range pairs {
		grouped[p.key] = append(grouped[p.key], p.value)
	}
	return grouped
}
