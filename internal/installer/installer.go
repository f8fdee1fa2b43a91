package installer

import (
	"context"
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/resmap-dev/resmap/internal/domain"
	"github.com/resmap-dev/resmap/internal/retry"
)

// Source describes where to fetch a package that has not yet been
// installed. pkg/resmap's Client builds one when LoadMapping names a
// package that discovery did not find; the core itself never constructs one.
type Source struct {
	Name        domain.PackageName
	RepoURL     string
	InstallPath string
	Branch      string // empty selects the repository's default branch
}

// Installer clones missing package repositories into their expected install
// paths, retrying transient clone failures with exponential backoff.
type Installer struct {
	logger      domain.Logger
	retryConfig retry.Config
}

// New creates an Installer. A zero-value logger defaults to discarding
// output; pass adapters.NewNoopLogger() explicitly to be unambiguous.
func New(logger domain.Logger) *Installer {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Installer{logger: logger, retryConfig: retry.DefaultConfig()}
}

// Ensure clones src.RepoURL into src.InstallPath if that directory does not
// already exist. A directory that exists is assumed already installed and
// is left untouched; Ensure never pulls or updates an existing clone.
func (i *Installer) Ensure(ctx context.Context, src Source) error {
	if _, err := os.Stat(src.InstallPath); err == nil {
		i.logger.Debug(ctx, "package_already_installed", "package", string(src.Name), "path", src.InstallPath)
		return nil
	}

	auth := ResolveAuth(ctx, src.RepoURL)
	i.logger.Info(ctx, "cloning_package", "package", string(src.Name), "url", src.RepoURL, "path", src.InstallPath)

	err := retry.Do(ctx, i.retryConfig, func() error {
		return clone(ctx, src, auth)
	})
	if err != nil {
		return fmt.Errorf("install package %q from %q: %w", src.Name, src.RepoURL, err)
	}

	i.logger.Info(ctx, "package_installed", "package", string(src.Name), "path", src.InstallPath)
	return nil
}

func clone(ctx context.Context, src Source, auth AuthMethod) error {
	opts := &git.CloneOptions{
		URL:   src.RepoURL,
		Depth: 1,
	}
	if src.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(src.Branch)
		opts.SingleBranch = true
	}

	switch a := auth.(type) {
	case TokenAuth:
		opts.Auth = &http.BasicAuth{Username: "x-access-token", Password: a.Token}
	case SSHAuth:
		sshAuth, err := ssh.NewPublicKeysFromFile("git", a.PrivateKeyPath, "")
		if err != nil {
			return fmt.Errorf("load ssh key %q: %w", a.PrivateKeyPath, err)
		}
		opts.Auth = sshAuth
	case NoAuth:
		// no auth configured
	}

	_, err := git.PlainCloneContext(ctx, src.InstallPath, false, opts)
	return err
}

type noopLogger struct{}

func (noopLogger) Debug(context.Context, string, ...any) {}
func (noopLogger) Info(context.Context, string, ...any)  {}
func (noopLogger) Warn(context.Context, string, ...any)  {}
func (noopLogger) Error(context.Context, string, ...any) {}
func (noopLogger) With(...any) domain.Logger             { return noopLogger{} }
