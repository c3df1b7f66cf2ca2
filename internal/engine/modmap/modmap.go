// # internal/engine/modmap/modmap.go
package modmap

// Map is an ordered module map: id -> source text. Iteration order is
// insertion order, which downstream passes rely on for deterministic output.
type Map struct {
	ids     []string
	sources map[string]string
}

func New() *Map {
	return &Map{
		sources: make(map[string]string),
	}
}

// Set adds or replaces a module. The first Set for an id fixes its position.
func (m *Map) Set(id, source string) {
	if _, ok := m.sources[id]; !ok {
		m.ids = append(m.ids, id)
	}
	m.sources[id] = source
}

func (m *Map) Get(id string) (string, bool) {
	src, ok := m.sources[id]
	return src, ok
}

func (m *Map) Has(id string) bool {
	_, ok := m.sources[id]
	return ok
}

// IDs returns the module ids in insertion order. The returned slice is a copy.
func (m *Map) IDs() []string {
	return append([]string(nil), m.ids...)
}

func (m *Map) Len() int {
	return len(m.ids)
}

func (m *Map) Clone() *Map {
	c := New()
	for _, id := range m.ids {
		c.Set(id, m.sources[id])
	}
	return c
}
