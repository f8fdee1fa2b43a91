package domain

import "strings"

// RepositoryPath is a logical absolute path in the composed namespace the
// system exposes, e.g. "/app/views". It is normalized at construction: no
// "." or ".." segments, no repeated separators, no trailing slash except for
// the root path "/" itself.
type RepositoryPath struct {
	value string
}

// NewRepositoryPath validates and constructs a RepositoryPath.
func NewRepositoryPath(s string) Result[RepositoryPath] {
	if !strings.HasPrefix(s, "/") {
		return Err[RepositoryPath](ErrInvalidPath{Path: s, Reason: "must be absolute (start with /)"})
	}

	if s == "/" {
		return Ok(RepositoryPath{value: s})
	}

	segments := strings.Split(s, "/")
	for _, seg := range segments[1:] {
		switch seg {
		case "":
			return Err[RepositoryPath](ErrInvalidPath{Path: s, Reason: "must not contain repeated separators"})
		case ".", "..":
			return Err[RepositoryPath](ErrInvalidPath{Path: s, Reason: `must not contain "." or ".." segments`})
		}
	}

	if s != "/" && strings.HasSuffix(s, "/") {
		return Err[RepositoryPath](ErrInvalidPath{Path: s, Reason: "must not have a trailing slash"})
	}

	return Ok(RepositoryPath{value: s})
}

// MustRepositoryPath constructs a RepositoryPath, panicking on error. Test
// code and callers with a compile-time-known-valid literal only.
func MustRepositoryPath(s string) RepositoryPath {
	return NewRepositoryPath(s).Unwrap()
}

// String returns the normalized path.
func (p RepositoryPath) String() string {
	return p.value
}

// Equals reports whether two repository paths are identical.
func (p RepositoryPath) Equals(other RepositoryPath) bool {
	return p.value == other.value
}

// isBasePath reports whether candidate falls under base: candidate equals
// base, or candidate begins with base followed by a separator. The root
// path "/" is a base of every path.
func isBasePath(base, candidate RepositoryPath) bool {
	if base.value == candidate.value {
		return true
	}
	if base.value == "/" {
		return true
	}
	return strings.HasPrefix(candidate.value, base.value+"/")
}

// IsBasePath is the exported form of the base-path containment test used by
// AddConflict's validation.
func IsBasePath(base, candidate RepositoryPath) bool {
	return isBasePath(base, candidate)
}

// PackageName is a non-empty package identifier, conventionally "vendor/name".
type PackageName string

// PathReference is a single entry of a ResourceMapping's pathReferences: a
// filesystem-relative path interpreted against the containing package's
// install directory, or, when it begins with '@' and contains a colon, a
// cross-package reference of the form "@packageName:relativePath".
type PathReference string

// parsed holds the result of splitting a PathReference per the grammar in
// spec §6. isCrossPackage is false when the reference should be resolved
// relative to the containing package (either because it has no '@' prefix,
// or it has an '@' prefix but no colon — the grammar treats that as a local
// path too).
type parsedReference struct {
	isCrossPackage bool
	packageName    PackageName
	relPath        string
}

// parse splits a PathReference according to the reference grammar:
//
//	reference   := localPath | '@' packageName ':' relPath
//	localPath   := non-empty string not starting with '@'
//	               (or starting with '@' but containing no ':')
//	packageName := characters up to the first ':'
//	relPath     := remainder after the ':'
func (r PathReference) parse() parsedReference {
	s := string(r)
	if !strings.HasPrefix(s, "@") {
		return parsedReference{isCrossPackage: false, relPath: s}
	}
	rest := s[1:]
	idx := strings.IndexByte(rest, ':')
	if idx < 0 {
		return parsedReference{isCrossPackage: false, relPath: s}
	}
	return parsedReference{
		isCrossPackage: true,
		packageName:    PackageName(rest[:idx]),
		relPath:        rest[idx+1:],
	}
}
