package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/configs"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/output"
)

func TestConfigInit(t *testing.T) {
	env := setupTestEnvironment(t)

	out := runCLI(t, "config", "init", "--target", env.Target)
	if !strings.Contains(out, "Config written to") {
		t.Errorf("Expected success message, got: %s", out)
	}

	cfg, err := configs.LoadConfig(env.ConfigPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.TargetDirectory != env.Target {
		t.Errorf("TargetDirectory = %q, want %q", cfg.TargetDirectory, env.Target)
	}

	out = runCLI(t, "config", "init")
	if !strings.Contains(out, "already exists") {
		t.Errorf("Expected existing config warning, got: %s", out)
	}

	out = runCLI(t, "config", "init", "--force")
	if !strings.Contains(out, "Config written to") {
		t.Errorf("Expected --force to overwrite, got: %s", out)
	}
}

func TestConfigShowJSON(t *testing.T) {
	env := setupTestEnvironment(t)
	writeSmallConfig(t, env)

	out := runCLI(t, "config", "show", "--json")

	var shown configs.Config
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	if shown.TargetDirectory != env.Target {
		t.Errorf("TargetDirectory = %q, want %q", shown.TargetDirectory, env.Target)
	}
	if shown.MinFileCount != 12 {
		t.Errorf("MinFileCount = %d, want 12", shown.MinFileCount)
	}
}

func TestConfigShowText(t *testing.T) {
	env := setupTestEnvironment(t)
	writeSmallConfig(t, env)

	out := runCLI(t, "config", "show")
	for _, want := range []string{"Target directory", env.Target, "1KB - 4KB", "12 - 16", "Manifests"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output: %s", want, out)
		}
	}
}

func TestConfigMigrate(t *testing.T) {
	env := setupTestEnvironment(t)

	envFile := filepath.Join(env.Root, ".env")
	content := "MIN_FILE_COUNT=5\nMAX_FILE_COUNT=9\nCHAFF_FILE_TYPES=txt,csv\nUNRELATED=1\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	out := runCLI(t, "config", "migrate", envFile)
	if !strings.Contains(out, "Migrated") {
		t.Fatalf("Expected migration message, got: %s", out)
	}
	if !strings.Contains(out, "UNRELATED") {
		t.Errorf("Expected ignored key to be listed: %s", out)
	}

	cfg, err := configs.LoadConfig(env.ConfigPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MinFileCount != 5 || cfg.MaxFileCount != 9 {
		t.Errorf("counts = %d-%d, want 5-9", cfg.MinFileCount, cfg.MaxFileCount)
	}
	if strings.Join(cfg.FileTypes, ",") != "txt,csv" {
		t.Errorf("FileTypes = %v, want [txt csv]", cfg.FileTypes)
	}
}

func TestGenerateDryRunWritesNothing(t *testing.T) {
	env := setupTestEnvironment(t)
	writeSmallConfig(t, env)

	out := runCLI(t, "generate", "--dry-run", "--seed", "7")
	if !strings.Contains(out, "[dry-run]") || !strings.Contains(out, "No changes made.") {
		t.Errorf("Expected dry-run output, got: %s", out)
	}
	if _, err := os.Stat(env.Target); !os.IsNotExist(err) {
		t.Errorf("Dry run should not create %s", env.Target)
	}
}

func TestGenerateAndClean(t *testing.T) {
	env := setupTestEnvironment(t)
	writeSmallConfig(t, env)

	out := runCLI(t, "generate", "--yes", "--seed", "11")
	if !strings.Contains(out, "Generated") {
		t.Fatalf("Expected generate success, got: %s", out)
	}

	manifest, err := output.LatestManifest(configs.UserChaffSettings.ManifestsPath)
	if err != nil {
		t.Fatalf("LatestManifest failed: %v", err)
	}
	if len(manifest.Files) < 12 {
		t.Fatalf("manifest lists %d files, want at least 12", len(manifest.Files))
	}
	for _, e := range manifest.Files {
		if _, err := os.Stat(e.Path); err != nil {
			t.Errorf("Expected %s on disk: %v", e.Path, err)
		}
	}

	out = runCLI(t, "clean", "--dry-run")
	if !strings.Contains(out, "Would remove") {
		t.Errorf("Expected clean preview, got: %s", out)
	}
	if _, err := os.Stat(manifest.Files[0].Path); err != nil {
		t.Errorf("Dry run removed %s", manifest.Files[0].Path)
	}

	out = runCLI(t, "clean", "--force")
	if !strings.Contains(out, "Removed") {
		t.Errorf("Expected clean success, got: %s", out)
	}
	for _, e := range manifest.Files {
		if _, err := os.Stat(e.Path); !os.IsNotExist(err) {
			t.Errorf("Expected %s to be removed", e.Path)
		}
	}
}

func TestCleanWithoutRuns(t *testing.T) {
	setupTestEnvironment(t)

	out := runCLI(t, "clean", "--force")
	if !strings.Contains(out, "Nothing to clean") {
		t.Errorf("Expected nothing-to-clean message, got: %s", out)
	}
}

func TestPlanList(t *testing.T) {
	env := setupTestEnvironment(t)
	writeSmallConfig(t, env)

	out := runCLI(t, "plan", "--seed", "3", "--list")
	for _, want := range []string{"seed 3", "File types:", "Languages:", "Files:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output: %s", want, out)
		}
	}

	again := runCLI(t, "plan", "--seed", "3", "--list")
	if planLines(out) != planLines(again) {
		t.Errorf("Same seed produced different plans")
	}
}

// planLines keeps the file listing, which does not depend on disk usage.
func planLines(out string) string {
	_, files, _ := strings.Cut(out, "Files:\n")
	return files
}

func TestDecodeWithRecordedPassword(t *testing.T) {
	env := setupTestEnvironment(t)
	writeSmallConfig(t, env)
	runCLI(t, "generate", "--yes", "--seed", "21")

	manifest, err := output.LatestManifest(configs.UserChaffSettings.ManifestsPath)
	if err != nil {
		t.Fatalf("LatestManifest failed: %v", err)
	}

	for i, e := range manifest.Files {
		dest := filepath.Join(env.Root, "decoded", e.Name)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
		out := runCLI(t, "decode", e.Path, "-o", dest)
		if !strings.Contains(out, "Decoded") {
			t.Errorf("file %d (%s, %s): expected decode success, got: %s", i, e.Name, e.Method, out)
			continue
		}
		if e.Password != "" && !strings.Contains(out, "run manifest") {
			t.Errorf("%s: expected password from manifest, got: %s", e.Name, out)
		}
		if info, err := os.Stat(dest); err != nil || info.Size() == 0 {
			t.Errorf("%s: decoded output missing or empty", e.Name)
		}
	}
}

func TestDecodeMissingFile(t *testing.T) {
	env := setupTestEnvironment(t)

	out := runCLI(t, "decode", filepath.Join(env.Root, "nope.txt"))
	if !strings.Contains(out, "does not exist") {
		t.Errorf("Expected missing file message, got: %s", out)
	}
}

func TestDecodeUnknownMethod(t *testing.T) {
	env := setupTestEnvironment(t)
	path := filepath.Join(env.Root, "plain.txt")
	if err := os.WriteFile(path, []byte("hello"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	out := runCLI(t, "decode", path, "--method", "rot13")
	if !strings.Contains(out, "Unknown encoding method") {
		t.Errorf("Expected unknown method message, got: %s", out)
	}
}

func TestDecodeToStdout(t *testing.T) {
	env := setupTestEnvironment(t)
	path := filepath.Join(env.Root, "note.txt.b64")
	if err := os.WriteFile(path, []byte("aGVsbG8gY2hhZmY="), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	out := runCLI(t, "decode", path, "--method", "base64")
	if out != "hello chaff" {
		t.Errorf("decoded = %q, want %q", out, "hello chaff")
	}
}
