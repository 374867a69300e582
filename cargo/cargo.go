package cargo

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Build describes one cargo build invocation.
type Build struct {
	// Build with optimizations (--release).
	Release bool
	// Cargo binary to invoke. Empty means "cargo" from PATH.
	Bin string
}

// ExitError is returned when cargo itself exits nonzero. The error text
// carries the full invoked command line and the exit status so the user
// can reproduce the failure. It is fatal and never retried.
type ExitError struct {
	Cmd    string
	Status string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("failed to execute `%v`: %v", e.Cmd, e.Status)
}

func (b Build) bin() string {
	if b.Bin != "" {
		return b.Bin
	}
	return "cargo"
}

// Run executes a library-only build in dir and returns the parsed message
// stream in the order cargo emitted it.
//
// The stream is parsed incrementally as it arrives rather than buffered
// whole, so memory stays bounded on large builds. Cargo's own diagnostics
// go to stderr and pass through to the user untouched.
func (b Build) Run(dir string) ([]Message, error) {
	args := []string{"build", "--lib", "--message-format=json"}
	if b.Release {
		args = append(args, "--release")
	}

	cmd := exec.Command(b.bin(), args...)
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %v: %w", b.bin(), err)
	}

	var msgs []Message
	sc := bufio.NewScanner(stdout)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] != '{' {
			// Build scripts may print plain text to stdout.
			continue
		}
		var msg Message
		if err := json.Unmarshal(line, &msg); err != nil {
			continue
		}
		msgs = append(msgs, msg)
	}
	scanErr := sc.Err()

	if err := cmd.Wait(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return nil, &ExitError{
				Cmd:    strings.Join(append([]string{b.bin()}, args...), " "),
				Status: err.Error(),
			}
		}
		return nil, err
	}
	if scanErr != nil {
		return nil, fmt.Errorf("read %v output: %w", b.bin(), scanErr)
	}
	return msgs, nil
}

// Metadata returns the name of the project's root package. It only feeds
// status messages, but a failure here is still fatal upstream: downstream
// messaging depends on it.
func (b Build) Metadata(dir string) (string, error) {
	cmd := exec.Command(b.bin(), "metadata", "--no-deps", "--format-version", "1")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("execute `%v metadata`: %w", b.bin(), err)
	}

	var meta struct {
		Packages []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"packages"`
		Resolve *struct {
			Root string `json:"root"`
		} `json:"resolve"`
	}
	if err := json.Unmarshal(out, &meta); err != nil {
		return "", fmt.Errorf("parse `%v metadata` output: %w", b.bin(), err)
	}

	if meta.Resolve != nil && meta.Resolve.Root != "" {
		for _, pkg := range meta.Packages {
			if pkg.ID == meta.Resolve.Root {
				return pkg.Name, nil
			}
		}
	}
	if len(meta.Packages) == 1 {
		return meta.Packages[0].Name, nil
	}
	return "", fmt.Errorf("cannot determine root package from `%v metadata` output", b.bin())
}
