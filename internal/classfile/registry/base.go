package registry

// BaseRegistry provides common functionality for simple key-value registries.
// Registries live for the duration of a single parse and are not shared.
type BaseRegistry[K comparable, V any] struct {
	data       map[K]V
	totalCount int
}

// NewBaseRegistry creates a new base registry
func NewBaseRegistry[K comparable, V any]() *BaseRegistry[K, V] {
	return &BaseRegistry[K, V]{
		data: make(map[K]V),
	}
}

// Add adds an item to the registry
func (r *BaseRegistry[K, V]) Add(key K, value V) {
	if _, exists := r.data[key]; !exists {
		r.totalCount++
	}
	r.data[key] = value
}

// Get retrieves an item from the registry
func (r *BaseRegistry[K, V]) Get(key K) (V, bool) {
	value, exists := r.data[key]
	return value, exists
}

// Count returns the number of distinct keys
func (r *BaseRegistry[K, V]) Count() int {
	return r.totalCount
}

func (r *BaseRegistry[K, V]) Clear() {
	r.data = make(map[K]V)
	r.totalCount = 0
}
