package memory

// table keeps records in insertion order with an id index for lookups.
// It is not safe for concurrent use; Store guards every table with its mutex.
type table[K comparable, V any] struct {
	records []V
	ids     []K
	index   map[K]int
}

func newTable[K comparable, V any](expected int) *table[K, V] {
	return &table[K, V]{
		records: make([]V, 0, expected),
		ids:     make([]K, 0, expected),
		index:   make(map[K]int, expected),
	}
}

func (t *table[K, V]) has(id K) bool {
	_, exists := t.index[id]
	return exists
}

func (t *table[K, V]) get(id K) (V, bool) {
	i, exists := t.index[id]
	if !exists {
		var zero V
		return zero, false
	}
	return t.records[i], true
}

func (t *table[K, V]) insert(id K, record V) {
	t.index[id] = len(t.records)
	t.records = append(t.records, record)
	t.ids = append(t.ids, id)
}

func (t *table[K, V]) replace(id K, record V) {
	t.records[t.index[id]] = record
}

func (t *table[K, V]) remove(id K) bool {
	i, exists := t.index[id]
	if !exists {
		return false
	}
	t.records = append(t.records[:i], t.records[i+1:]...)
	t.ids = append(t.ids[:i], t.ids[i+1:]...)
	delete(t.index, id)
	// Shift indexes of everything after the removed record
	for j := i; j < len(t.ids); j++ {
		t.index[t.ids[j]] = j
	}
	return true
}

func (t *table[K, V]) all() []V {
	out := make([]V, len(t.records))
	copy(out, t.records)
	return out
}

func (t *table[K, V]) len() int {
	return len(t.records)
}
