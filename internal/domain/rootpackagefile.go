package domain

// RootPackageFile is the in-memory container the atomic operations mutate:
// an index of ResourceMapping by repository path. It is the core-facing
// surface of the root package file; persistence to the JSON-backed store is
// handled entirely outside the core (see internal/store).
type RootPackageFile struct {
	byPath map[string]*ResourceMapping
	order  []string
}

// NewRootPackageFile creates an empty RootPackageFile.
func NewRootPackageFile() *RootPackageFile {
	return &RootPackageFile{byPath: make(map[string]*ResourceMapping)}
}

// HasResourceMapping reports whether a mapping is indexed at path.
func (f *RootPackageFile) HasResourceMapping(path RepositoryPath) bool {
	_, ok := f.byPath[path.String()]
	return ok
}

// GetResourceMapping returns the mapping indexed at path, if any.
func (f *RootPackageFile) GetResourceMapping(path RepositoryPath) (*ResourceMapping, bool) {
	m, ok := f.byPath[path.String()]
	return m, ok
}

// AddResourceMapping indexes m by its repository path, replacing any prior
// mapping at that path. The replaced mapping keeps its position in iteration
// order; a genuinely new path is appended.
func (f *RootPackageFile) AddResourceMapping(m *ResourceMapping) {
	key := m.GetRepositoryPath().String()
	if _, exists := f.byPath[key]; !exists {
		f.order = append(f.order, key)
	}
	f.byPath[key] = m
}

// RemoveResourceMapping deletes the mapping indexed at path, if any.
func (f *RootPackageFile) RemoveResourceMapping(path RepositoryPath) {
	key := path.String()
	if _, exists := f.byPath[key]; !exists {
		return
	}
	delete(f.byPath, key)
	for i, k := range f.order {
		if k == key {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// All returns every indexed mapping, in insertion order.
func (f *RootPackageFile) All() []*ResourceMapping {
	out := make([]*ResourceMapping, 0, len(f.order))
	for _, key := range f.order {
		out = append(out, f.byPath[key])
	}
	return out
}

// Len reports how many mappings are currently indexed.
func (f *RootPackageFile) Len() int {
	return len(f.order)
}
