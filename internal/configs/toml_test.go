package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadTOML(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "config.toml")

	original := DefaultConfig()
	original.TargetDirectory = "/tmp/chaff-out"
	original.Seed = 1234
	original.Encoding.Weights = map[string][]float64{"txt": {1, 0, 0, 0, 0, 0, 0}}

	if err := SaveTOML(testFile, original); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loaded := &Config{}
	if _, err := LoadTOML(testFile, loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loaded.TargetDirectory != original.TargetDirectory {
		t.Errorf("Expected TargetDirectory %q, got %q", original.TargetDirectory, loaded.TargetDirectory)
	}
	if loaded.Seed != original.Seed {
		t.Errorf("Expected Seed %d, got %d", original.Seed, loaded.Seed)
	}
	if loaded.Linking != original.Linking {
		t.Errorf("Expected Linking %+v, got %+v", original.Linking, loaded.Linking)
	}
	if got := loaded.Encoding.Weights["txt"]; len(got) != 7 || got[0] != 1 {
		t.Errorf("Expected txt weights to round-trip, got %v", got)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "nonexistent.toml")

	if _, err := LoadTOML(testFile, &Config{}); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

func TestSaveTOMLCreatesDirectory(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "subdir", "config.toml")

	if err := SaveTOML(testFile, DefaultConfig()); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	if _, err := os.Stat(testFile); os.IsNotExist(err) {
		t.Fatal("File was not created")
	}
}

func TestSaveTOMLIsOwnerOnly(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "run.toml")

	if err := SaveTOML(testFile, DefaultConfig()); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}
	info, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected permissions 0600, got %o", perm)
	}

	entries, err := os.ReadDir(filepath.Dir(testFile))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the saved file, found %d entries", len(entries))
	}
}

func TestLoadTOMLReportsUnknownKeys(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "config.toml")
	content := "target_directory = \"/tmp/x\"\nmax_fil_count = 3\n"
	if err := os.WriteFile(testFile, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	unknown, err := LoadTOML(testFile, &Config{})
	if err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if len(unknown) != 1 || unknown[0] != "max_fil_count" {
		t.Errorf("Expected [max_fil_count], got %v", unknown)
	}
}
