package recipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
)

// DefaultExternalTimeout bounds how long the external recipe-builder tool
// may run before it is killed.
const DefaultExternalTimeout = 5 * time.Minute

// externalToolName is the external binary RunExternal looks for on $PATH.
// Its presence is optional: generate falls back to the in-process template
// renderer when it is absent.
const externalToolName = "resmap-recipe"

// ExternalToolAvailable reports whether the optional external recipe
// builder is present on $PATH.
func ExternalToolAvailable() bool {
	_, err := exec.LookPath(externalToolName)
	return err == nil
}

// RunExternal shells out to the external recipe-builder tool, streaming its
// output to out through a pty so the subprocess's own progress reporting
// (which typically checks isatty before printing) renders as it would in an
// interactive terminal.
func RunExternal(ctx context.Context, outputPath string, out io.Writer) error {
	toolPath, err := exec.LookPath(externalToolName)
	if err != nil {
		return fmt.Errorf("%s not found on PATH: %w", externalToolName, err)
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultExternalTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, toolPath, "--output", outputPath)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("start %s under pty: %w", externalToolName, err)
	}
	defer func() {
		_ = ptmx.Close()
	}()

	_, copyErr := io.Copy(out, ptmx)
	waitErr := cmd.Wait()

	// A closed pty surfaces as an I/O error once the child exits; that is
	// expected and not itself a failure.
	if copyErr != nil && !errors.Is(copyErr, os.ErrClosed) && !isPtyEOF(copyErr) {
		return fmt.Errorf("read %s output: %w", externalToolName, copyErr)
	}
	if waitErr != nil {
		return fmt.Errorf("%s exited with error: %w", externalToolName, waitErr)
	}
	return nil
}

func isPtyEOF(err error) bool {
	var pathErr *os.PathError
	return errors.As(err, &pathErr)
}
