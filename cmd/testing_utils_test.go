package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/configs"
	logger "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/logging"
)

// testEnv holds the temporary locations one command test works in.
type testEnv struct {
	Root       string
	Target     string
	ConfigPath string
}

// setupTestEnvironment points the user settings at a temporary directory
// and changes into it. Both are restored when the test ends.
func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	original := configs.UserChaffSettings
	settings := *original
	settings.ConfigDir = filepath.Join(root, "config")
	settings.ConfigPath = filepath.Join(root, "config", "config.toml")
	settings.DataDir = filepath.Join(root, "data")
	settings.ManifestsPath = filepath.Join(root, "data", "manifests")
	settings.AuditLogPath = filepath.Join(root, "config", "audit.jsonl")
	settings.DefaultTarget = filepath.Join(root, "chaff")
	configs.UserChaffSettings = &settings

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserChaffSettings = original
	})

	return &testEnv{
		Root:       root,
		Target:     filepath.Join(root, "chaff"),
		ConfigPath: settings.ConfigPath,
	}
}

// writeSmallConfig saves a config that generates a dozen tiny files.
func writeSmallConfig(t *testing.T, env *testEnv) {
	t.Helper()
	cfg := configs.DefaultConfig()
	cfg.TargetDirectory = env.Target
	cfg.MinFileSize = "1KB"
	cfg.MaxFileSize = "4KB"
	cfg.MinimumRemainingDiskSpace = "0"
	cfg.MinFileCount = 12
	cfg.MaxFileCount = 16
	cfg.Workers = 2
	if err := configs.SaveConfig(env.ConfigPath, cfg); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		stdoutChan <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// createTestCLI creates a fresh root command wired with every sub-command
// and set to run args.
func createTestCLI(args ...string) *cobra.Command {
	root := &cobra.Command{Use: "chaff", SilenceUsage: true}
	Register(root)
	ResetGlobalState(root)
	Logger = logger.Logger{}
	root.SetArgs(args)
	return root
}

// runCLI executes args and returns the captured output.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	output, err := captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
	if err != nil {
		t.Fatalf("chaff %v failed: %v\nOutput: %s", args, err, output)
	}
	return output
}
