package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandError reports a git invocation that could not be started or exited
// with a non-zero status.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func commandError(args []string, stderr *bytes.Buffer, err error) error {
	return &CommandError{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
}

// BlameSource reads line history with `git blame -t`.
// Paths are resolved relative to Dir.
type BlameSource struct {
	Dir string
}

// Blame streams `git blame -t -- path`, calling fn for each output line before
// the next one is read.
func (s BlameSource) Blame(ctx context.Context, path string, fn func(line string) error) error {
	args := []string{"blame", "-t", "--", path}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.Dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return commandError(args, &stderr, err)
	}
	if err := cmd.Start(); err != nil {
		return commandError(args, &stderr, err)
	}

	scanner := bufio.NewScanner(stdout)
	// Source lines can be long (minified files, generated code)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			// Stop git before reporting; its exit status is irrelevant now
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("failed to read git blame output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		return commandError(args, &stderr, err)
	}
	return nil
}

// LogSource reads revision log entries with `git show`.
type LogSource struct {
	Dir string
}

// Log returns the medium-format log entry of revision without its diff.
func (s LogSource) Log(ctx context.Context, revision string) (string, error) {
	args := []string{"show", "--pretty=medium", "-s", revision}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", commandError(args, &stderr, err)
	}
	return stdout.String(), nil
}
