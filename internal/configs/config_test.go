package configs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	warnings, err := cfg.Validate()
	if err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("default config produced warnings: %v", warnings)
	}

	limits, err := cfg.Limits()
	if err != nil {
		t.Fatal(err)
	}
	if limits.MinFileSize != 104857 || limits.MaxFileSize != 10*1024*1024 {
		t.Errorf("size limits = %d..%d", limits.MinFileSize, limits.MaxFileSize)
	}
	if limits.ReserveSpace != 100*1024*1024 {
		t.Errorf("reserve = %d", limits.ReserveSpace)
	}
	if limits.CleanupDelay != 5*time.Second {
		t.Errorf("cleanup delay = %v", limits.CleanupDelay)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MinFileCount != 100 || cfg.MaxFileCount != 10000 {
		t.Errorf("counts = %d..%d, want defaults", cfg.MinFileCount, cfg.MaxFileCount)
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
target_directory = "/srv/decoys"
min_file_count = 5
max_file_count = 20
file_types = ["txt", "pdf"]

[linking]
reverse_attachment = 0.1
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.TargetDirectory != "/srv/decoys" {
		t.Errorf("TargetDirectory = %q", cfg.TargetDirectory)
	}
	if cfg.MaxFileSize != "10MB" {
		t.Errorf("unset keys should keep defaults, MaxFileSize = %q", cfg.MaxFileSize)
	}
	if cfg.Linking.ReverseAttachment != 0.1 || cfg.Linking.EmbedImages != 0.6 {
		t.Errorf("Linking = %+v", cfg.Linking)
	}
	kinds, err := cfg.Kinds()
	if err != nil {
		t.Fatal(err)
	}
	if len(kinds) != 2 || kinds[0] != plan.KindTXT || kinds[1] != plan.KindPDF {
		t.Errorf("Kinds() = %v", kinds)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("min_file_count = [oops"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); !errors.Is(err, cerrors.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"CHAFF_TARGET_DIRECTORY":        "/data/chaff",
		"CHAFF_FILL_DRIVE":              "true",
		"CHAFF_MIN_FILE_COUNT":          "3",
		"CHAFF_FILE_TYPES":              " txt, eml ,,csv ",
		"CHAFF_SEED":                    "18446744073709551615",
		"CHAFF_DELETE_AFTER_COMPLETION": "",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.TargetDirectory != "/data/chaff" || !cfg.FillDrive || cfg.MinFileCount != 3 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if strings.Join(cfg.FileTypes, ",") != "txt,eml,csv" {
		t.Errorf("FileTypes = %v", cfg.FileTypes)
	}
	if cfg.Seed != 18446744073709551615 {
		t.Errorf("Seed = %d", cfg.Seed)
	}
	if cfg.DeleteAfterCompletion {
		t.Error("empty variable should not override")
	}
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"CHAFF_FILL_DRIVE":     "sometimes",
		"CHAFF_MAX_FILE_COUNT": "many",
	}))
	if !errors.Is(err, cerrors.ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "CHAFF_FILL_DRIVE") || !strings.Contains(err.Error(), "CHAFF_MAX_FILE_COUNT") {
		t.Errorf("error should name both variables: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  error
		warnings int
	}{
		{"bad size", func(c *Config) { c.MinFileSize = "lots" }, cerrors.ErrInvalidSize, 0},
		{"unknown kind", func(c *Config) { c.FileTypes = []string{"exe"} }, cerrors.ErrUnknownKind, 0},
		{"bad weights", func(c *Config) { c.Encoding.Weights = map[string][]float64{"txt": {1}} }, cerrors.ErrInvalidWeights, 0},
		{"bad probability", func(c *Config) { c.Linking.EmbedImages = 2 }, cerrors.ErrInvalidConfig, 0},
		{"bad suffix policy", func(c *Config) { c.SuffixPolicy = "rename" }, cerrors.ErrInvalidConfig, 0},
		{"negative count", func(c *Config) { c.MinFileCount = -1 }, cerrors.ErrInvalidConfig, 0},
		{"size order", func(c *Config) { c.MinFileSize = "20MB" }, nil, 1},
		{"count order", func(c *Config) { c.MinFileCount = 10000 }, nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			warnings, err := cfg.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(warnings) != tt.warnings {
				t.Errorf("warnings = %v, want %d", warnings, tt.warnings)
			}
		})
	}
}

func TestUsableDiskSpace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not", "created", "yet")
	space, err := UsableDiskSpace(dir, 0)
	if err != nil {
		t.Fatalf("UsableDiskSpace failed: %v", err)
	}
	if space.Free == 0 || space.Usable != space.Free {
		t.Errorf("space = %+v", space)
	}

	huge, err := UsableDiskSpace(dir, ^uint64(0))
	if err != nil {
		t.Fatal(err)
	}
	if huge.Usable != 0 {
		t.Errorf("reserve larger than free should leave nothing usable, got %d", huge.Usable)
	}
	if err := huge.CheckSpace(1, 1); !errors.Is(err, cerrors.ErrInsufficientSpace) {
		t.Errorf("CheckSpace error = %v, want ErrInsufficientSpace", err)
	}
	if err := huge.CheckSpace(0, 1); err != nil {
		t.Errorf("empty minimum plan should fit: %v", err)
	}
}

func TestNewUserSettings(t *testing.T) {
	s := newUserSettings("/home/u", "/home/u/.config", "/home/u/.local/share")
	if s.ConfigPath != "/home/u/.config/chaff/config.toml" {
		t.Errorf("ConfigPath = %q", s.ConfigPath)
	}
	if s.ManifestsPath != "/home/u/.local/share/chaff/manifests" {
		t.Errorf("ManifestsPath = %q", s.ManifestsPath)
	}
	if s.DefaultTarget != "/home/u/.chaff" {
		t.Errorf("DefaultTarget = %q", s.DefaultTarget)
	}
}

func TestLoadConfigWarnsAboutUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "target_directory = \"/tmp/chaff\"\nmin_fle_size = \"1KB\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	warnings, err := cfg.Validate()
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "min_fle_size") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a warning about min_fle_size, got %v", warnings)
	}
}

func TestLoadConfigExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("target_directory = \"~/decoys\"\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if want := filepath.Join(home, "decoys"); cfg.TargetDirectory != want {
		t.Errorf("TargetDirectory = %q, want %q", cfg.TargetDirectory, want)
	}
}
