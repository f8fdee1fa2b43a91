// Package installer clones a package's repository into its expected install
// path when a mapping is loaded against a package that discovery did not
// find because it has not been fetched yet.
package installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// AuthMethod selects how Ensure authenticates against a repository URL.
type AuthMethod interface {
	authMethod()
}

// NoAuth performs no authentication, for public repositories.
type NoAuth struct{}

func (NoAuth) authMethod() {}

// TokenAuth authenticates over HTTP basic auth, sending the token as the
// password.
type TokenAuth struct {
	Token string
}

func (TokenAuth) authMethod() {}

// SSHAuth authenticates using an SSH private key on disk.
type SSHAuth struct {
	PrivateKeyPath string
}

func (SSHAuth) authMethod() {}

// ResolveAuth determines the authentication method for repoURL.
//
// Resolution priority:
//  1. GIT_TOKEN environment variable -> TokenAuth
//  2. SSH URLs with a key present under ~/.ssh -> SSHAuth
//  3. NoAuth, for public repositories
func ResolveAuth(ctx context.Context, repoURL string) AuthMethod {
	if token := os.Getenv("GIT_TOKEN"); token != "" {
		return TokenAuth{Token: token}
	}

	if isSSHURL(repoURL) {
		if homeDir, err := os.UserHomeDir(); err == nil {
			if keyPath := findSSHKey(homeDir); keyPath != "" {
				return SSHAuth{PrivateKeyPath: keyPath}
			}
		}
	}

	return NoAuth{}
}

func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") || strings.HasPrefix(url, "ssh://")
}

// findSSHKey returns the first of the conventional SSH private key paths
// under homeDir/.ssh that exists, preferring Ed25519 over RSA.
func findSSHKey(homeDir string) string {
	sshDir := filepath.Join(homeDir, ".ssh")

	for _, name := range []string{"id_ed25519", "id_rsa"} {
		candidate := filepath.Join(sshDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
