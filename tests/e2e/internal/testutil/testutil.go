package testutil

// Shared test utilities for e2e tests.

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

// AssertLogContains checks if the output contains all expected strings
func AssertLogContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, exp := range expected {
		if !strings.Contains(output, exp) {
			t.Errorf("expected output to contain %q, but it didn't.\nOutput:\n%s", exp, output)
		}
	}
}

// RunCLI executes the dockhand CLI binary with args, capturing stdout/stderr, with timeout.
// It is safe to call from parallel tests.
func RunCLI(t *testing.T, args []string, env []string, timeout time.Duration) (stdout, stderr string, exitErr error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Build a per-invocation environment: start from the current process env,
	// disable config file loading for deterministic e2e tests, then apply
	// overrides. os.Environ and os.Stdout/os.Stderr are never mutated, so
	// parallel calls are safe.
	envMap := make(map[string]string, len(os.Environ())+1)
	for _, e := range os.Environ() {
		if k, v, ok := strings.Cut(e, "="); ok {
			envMap[k] = v
		}
	}
	envMap["DOCKHAND_NO_CONFIG"] = "1"
	for _, e := range env {
		if k, v, ok := strings.Cut(e, "="); ok {
			envMap[k] = v
		}
	}
	envSlice := make([]string, 0, len(envMap))
	for k, v := range envMap {
		envSlice = append(envSlice, k+"="+v)
	}

	var outBuf, errBuf bytes.Buffer
	err := executeCLI(ctx, args, envSlice, &outBuf, &errBuf)

	if ctx.Err() == context.DeadlineExceeded {
		err = fmt.Errorf("command timed out after %v", timeout)
	}

	return outBuf.String(), errBuf.String(), err
}

// --- Binary execution integration ---

var (
	dockhandBinaryResolved string
	dockhandBinaryBuildErr error
	buildOnce              sync.Once
)

func buildBinary(moduleDir, outputPath string) error {
	cmd := exec.Command("go", "build", "-o", outputPath, "./cmd/dockhand")
	cmd.Dir = moduleDir
	cmd.Env = os.Environ()
	return cmd.Run()
}

// findModuleRoot searches upwards for a directory containing go.mod and cmd/dockhand/main.go (the CLI entry)
func findModuleRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for dir := wd; dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			if _, err := os.Stat(filepath.Join(dir, "cmd", "dockhand", "main.go")); err == nil {
				return dir, nil
			}
			return dir, nil
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}
	return "", fmt.Errorf("module root not found from %s", wd)
}

// resolveBinary returns the path to the dockhand binary, building it once if necessary.
func resolveBinary() (string, error) {
	if binPath := os.Getenv("DOCKHAND_BINARY"); binPath != "" {
		if !filepath.IsAbs(binPath) {
			if moduleDir, err := findModuleRoot(); err == nil {
				absPath := filepath.Join(moduleDir, binPath)
				if _, err := os.Stat(absPath); err == nil {
					return absPath, nil
				}
			}
		}
		return binPath, nil
	}

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "dockhand-e2e-")
		if err != nil {
			dockhandBinaryBuildErr = err
			return
		}
		tmpBin := filepath.Join(tmpDir, "dockhand")
		if runtime.GOOS == "windows" {
			tmpBin += ".exe"
		}
		moduleDir, err := findModuleRoot()
		if err != nil {
			dockhandBinaryBuildErr = err
			return
		}
		if err := buildBinary(moduleDir, tmpBin); err != nil {
			dockhandBinaryBuildErr = err
			return
		}
		dockhandBinaryResolved = tmpBin
	})

	if dockhandBinaryBuildErr != nil {
		return "", fmt.Errorf("failed to build dockhand test binary: %w", dockhandBinaryBuildErr)
	}
	return dockhandBinaryResolved, nil
}

// executeCLI runs the CLI as a separate process, writing output to the provided writers.
// It uses no global state so it is safe to call concurrently.
func executeCLI(ctx context.Context, args []string, env []string, stdout, stderr io.Writer) error {
	binPath, err := resolveBinary()
	if err != nil {
		return err
	}

	// #nosec G204 -- binPath is the test binary path, intentionally variable for testing
	cmd := exec.CommandContext(ctx, binPath, args...)
	cmd.Env = env
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// WriteProjectFile creates a file (and parent directories) inside an e2e
// fixture project tree.
func WriteProjectFile(t *testing.T, root string, rel string, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}
