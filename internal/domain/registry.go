package domain

// StaticPackageCollection is an in-memory PackageCollection backed by a map
// for O(1) lookup and a parallel slice to preserve insertion order for All.
// Package discovery (internal/discovery) builds one of these per scan; the
// core never constructs packages itself.
type StaticPackageCollection struct {
	byName map[PackageName]Package
	order  []PackageName
}

// NewStaticPackageCollection builds a collection from the given packages.
// Later entries with a duplicate name replace earlier ones but keep the
// original's position in All's iteration order.
func NewStaticPackageCollection(packages ...Package) *StaticPackageCollection {
	c := &StaticPackageCollection{
		byName: make(map[PackageName]Package, len(packages)),
	}
	for _, p := range packages {
		c.add(p)
	}
	return c
}

// Add registers a package, replacing any existing entry with the same name.
func (c *StaticPackageCollection) Add(p Package) {
	c.add(p)
}

func (c *StaticPackageCollection) add(p Package) {
	if _, exists := c.byName[p.Name()]; !exists {
		c.order = append(c.order, p.Name())
	}
	c.byName[p.Name()] = p
}

// Contains reports whether name refers to a known package.
func (c *StaticPackageCollection) Contains(name PackageName) bool {
	_, ok := c.byName[name]
	return ok
}

// Get returns the package named name, or ErrNoSuchPackage if unknown.
func (c *StaticPackageCollection) Get(name PackageName) (Package, error) {
	p, ok := c.byName[name]
	if !ok {
		return nil, ErrNoSuchPackage{Package: string(name)}
	}
	return p, nil
}

// All returns every registered package in insertion order.
func (c *StaticPackageCollection) All() []Package {
	out := make([]Package, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// SimplePackage is the minimal concrete Package implementation: a name and
// an install path, nothing else. Discovery, the installer, and tests all
// construct packages this way.
type SimplePackage struct {
	name        PackageName
	installPath string
}

// NewSimplePackage constructs a Package from a name and install path.
func NewSimplePackage(name PackageName, installPath string) SimplePackage {
	return SimplePackage{name: name, installPath: installPath}
}

// Name returns the package's name.
func (p SimplePackage) Name() PackageName { return p.name }

// InstallPath returns the package's install directory.
func (p SimplePackage) InstallPath() string { return p.installPath }
