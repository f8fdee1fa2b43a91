package domain

// RepositoryPathConflict is the bipartite edge between a repository path and
// the set of mappings that claim it. Conflicts are shared objects: a
// mapping's conflicts map holds a strong reference to each Conflict it is
// part of, while a Conflict's mappings set is logically a set of
// back-references — it must never be the only thing keeping a mapping
// reachable, and removing a mapping from it must never mutate the mapping's
// own state (that flows the other way, through the mapping's
// AddConflict/RemoveConflict).
type RepositoryPathConflict struct {
	repositoryPath RepositoryPath
	mappings       []*ResourceMapping
}

// NewRepositoryPathConflict creates a conflict for the given repository path
// with no members. Callers attach members via mapping.AddConflict, which
// calls back into addMapping to keep the bipartite relation symmetric.
func NewRepositoryPathConflict(path RepositoryPath) *RepositoryPathConflict {
	return &RepositoryPathConflict{repositoryPath: path}
}

// RepositoryPath returns the contested repository path.
func (c *RepositoryPathConflict) RepositoryPath() RepositoryPath {
	return c.repositoryPath
}

// Mappings returns the conflict's members in insertion order.
func (c *RepositoryPathConflict) Mappings() []*ResourceMapping {
	out := make([]*ResourceMapping, len(c.mappings))
	copy(out, c.mappings)
	return out
}

// Len reports how many mappings currently claim this path.
func (c *RepositoryPathConflict) Len() int {
	return len(c.mappings)
}

// Inert reports whether the conflict has fewer than two members and should
// be resolved (detached from every mapping that still references it).
func (c *RepositoryPathConflict) Inert() bool {
	return len(c.mappings) < 2
}

// addMapping inserts m, idempotent on identity. It does not touch
// m.conflicts — symmetry is the caller's responsibility; ResourceMapping's
// AddConflict is the sole legitimate caller.
func (c *RepositoryPathConflict) addMapping(m *ResourceMapping) {
	for _, existing := range c.mappings {
		if existing == m {
			return
		}
	}
	c.mappings = append(c.mappings, m)
}

// removeMapping erases m, idempotent. It must not mutate m's own state; that
// is ResourceMapping.RemoveConflict's job, and this method is reachable from
// contexts (mapping.unload) where re-entering the mapping would be wrong.
func (c *RepositoryPathConflict) removeMapping(m *ResourceMapping) {
	for i, existing := range c.mappings {
		if existing == m {
			c.mappings = append(c.mappings[:i], c.mappings[i+1:]...)
			return
		}
	}
}

// has reports whether m is currently a member.
func (c *RepositoryPathConflict) has(m *ResourceMapping) bool {
	for _, existing := range c.mappings {
		if existing == m {
			return true
		}
	}
	return false
}
