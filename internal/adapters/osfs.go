package adapters

import (
	"context"
	"os"
)

// OSFilesystem implements domain.FS against the host filesystem. It is
// deliberately as narrow as the port it satisfies: the core only ever needs
// to know whether a resolved reference path exists.
type OSFilesystem struct{}

// NewOSFilesystem creates an OS-backed domain.FS.
func NewOSFilesystem() *OSFilesystem {
	return &OSFilesystem{}
}

// Exists reports whether path exists on disk. A cancelled context is
// treated as non-existence rather than surfaced as an error, matching the
// port's boolean-only signature.
func (f *OSFilesystem) Exists(ctx context.Context, path string) bool {
	if err := ctx.Err(); err != nil {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
