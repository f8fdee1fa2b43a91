package domain

// ConflictDetector walks a set of loaded mappings and (re)computes the
// RepositoryPathConflicts implied by their repository paths: two mappings
// conflict at path p when both have p as their own repositoryPath.
//
// Open question (spec §9): the representation lets a conflict's path sit
// anywhere base-related to a member's path, but this detector only ever
// produces equal-path conflicts — subtree-nested conflicts are representable,
// just not something this procedure generates. Left general on purpose.
type ConflictDetector struct {
	tracked map[string]*RepositoryPathConflict
}

// NewConflictDetector creates a detector with no tracked conflicts.
func NewConflictDetector() *ConflictDetector {
	return &ConflictDetector{tracked: make(map[string]*RepositoryPathConflict)}
}

// Refresh recomputes conflicts over mappings. Unloaded mappings are ignored.
// For every repository path claimed by two or more loaded mappings, Refresh
// reuses or creates a RepositoryPathConflict and reconciles its membership
// to exactly that set via AddConflict/RemoveConflict. Paths that no longer
// have two or more claimants — including ones this detector previously
// tracked but that dropped out of the loaded set entirely — are resolved:
// every current member is detached so the conflict goes inert.
//
// Two independent Refresh calls over the same snapshot of mappings produce
// conflict sets equal by (repositoryPath, member-set) content; detection
// does not depend on the order mappings are passed in.
func (d *ConflictDetector) Refresh(mappings []*ResourceMapping) error {
	groups := make(map[string][]*ResourceMapping)
	var order []string

	for _, m := range mappings {
		if !m.IsLoaded() {
			continue
		}
		key := m.GetRepositoryPath().String()
		if _, exists := groups[key]; !exists {
			order = append(order, key)
		}
		groups[key] = append(groups[key], m)
	}

	seen := make(map[string]bool, len(order))
	for _, key := range order {
		seen[key] = true
		members := groups[key]

		if len(members) < 2 {
			if err := d.resolve(key); err != nil {
				return err
			}
			continue
		}

		conflict, tracked := d.tracked[key]
		if !tracked {
			conflict = NewRepositoryPathConflict(members[0].GetRepositoryPath())
			d.tracked[key] = conflict
		}

		desired := make(map[*ResourceMapping]bool, len(members))
		for _, m := range members {
			desired[m] = true
		}
		for _, m := range conflict.Mappings() {
			if !desired[m] {
				if err := m.RemoveConflict(conflict); err != nil {
					return err
				}
			}
		}
		for _, m := range members {
			if err := m.AddConflict(conflict); err != nil {
				return err
			}
		}
	}

	// Anything this detector tracked that no longer appears at all (every
	// member unloaded) never reached the loop above; resolve it here.
	for key := range d.tracked {
		if !seen[key] {
			if err := d.resolve(key); err != nil {
				return err
			}
		}
	}

	return nil
}

// Active returns every conflict the detector currently tracks, in no
// particular order. Callers needing a stable order should sort by
// RepositoryPath themselves.
func (d *ConflictDetector) Active() []*RepositoryPathConflict {
	out := make([]*RepositoryPathConflict, 0, len(d.tracked))
	for _, c := range d.tracked {
		out = append(out, c)
	}
	return out
}

// resolve detaches every member of the tracked conflict at key, if any, and
// stops tracking it.
func (d *ConflictDetector) resolve(key string) error {
	conflict, tracked := d.tracked[key]
	if !tracked {
		return nil
	}
	for _, m := range conflict.Mappings() {
		if err := m.RemoveConflict(conflict); err != nil {
			return err
		}
	}
	delete(d.tracked, key)
	return nil
}
