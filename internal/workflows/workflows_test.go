package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/audit"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/configs"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/encoding"
	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/output"
)

// isolate points user paths at a temp dir for one test.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	original := configs.UserChaffSettings
	settings := *original
	settings.ConfigPath = filepath.Join(root, "config", "config.toml")
	settings.ManifestsPath = filepath.Join(root, "data", "manifests")
	settings.AuditLogPath = filepath.Join(root, "config", "audit.jsonl")
	configs.UserChaffSettings = &settings
	t.Cleanup(func() {
		configs.UserChaffSettings = original
	})
	return root
}

func smallConfig(target string) *configs.Config {
	cfg := configs.DefaultConfig()
	cfg.TargetDirectory = target
	cfg.MinFileSize = "1KB"
	cfg.MaxFileSize = "4KB"
	cfg.MinimumRemainingDiskSpace = "0"
	cfg.MinFileCount = 12
	cfg.MaxFileCount = 16
	cfg.Workers = 2
	return cfg
}

func TestGenerateWritesAndRecordsRun(t *testing.T) {
	root := isolate(t)
	target := filepath.Join(root, "chaff")

	result, err := Generate(context.Background(), GenerateOptions{Config: smallConfig(target), Seed: 99})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Seed != 99 {
		t.Errorf("Seed = %d, want 99", result.Seed)
	}
	if len(result.Written) != result.Plan.Len() {
		t.Fatalf("wrote %d files for a plan of %d", len(result.Written), result.Plan.Len())
	}
	if result.Plan.Len() < 12 || result.Plan.Len() > 16 {
		t.Errorf("plan size %d outside configured bounds", result.Plan.Len())
	}

	for _, w := range result.Written {
		data, err := os.ReadFile(w.Path)
		if err != nil {
			t.Fatalf("reading %s: %v", w.Path, err)
		}
		if output.Digest(data) != w.Digest {
			t.Errorf("%s digest mismatch", w.Path)
		}
	}

	manifest, err := output.LoadManifest(result.ManifestPath)
	if err != nil {
		t.Fatalf("manifest not saved: %v", err)
	}
	if len(manifest.Files) != len(result.Written) {
		t.Errorf("manifest lists %d files, want %d", len(manifest.Files), len(result.Written))
	}

	entries, err := audit.ReadEntries()
	if err != nil || len(entries) != 1 || entries[0].Operation != "generate" || entries[0].RunID != result.RunID {
		t.Errorf("audit entries = %+v, %v", entries, err)
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	root := isolate(t)

	a, err := Generate(context.Background(), GenerateOptions{Config: smallConfig(filepath.Join(root, "a")), Seed: 7, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(context.Background(), GenerateOptions{Config: smallConfig(filepath.Join(root, "b")), Seed: 7, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	pa, pb := a.Plan.All(), b.Plan.All()
	if len(pa) != len(pb) {
		t.Fatalf("plan sizes differ: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("plan entry %d differs: %+v vs %+v", i, pa[i], pb[i])
		}
	}
}

func TestGenerateDryRunWritesNothing(t *testing.T) {
	root := isolate(t)
	target := filepath.Join(root, "chaff")

	result, err := Generate(context.Background(), GenerateOptions{Config: smallConfig(target), DryRun: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !result.DryRun || result.Network != nil || len(result.Written) != 0 {
		t.Errorf("dry run produced output: %+v", result)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("dry run created %s", target)
	}
}

func TestGenerateInsufficientSpace(t *testing.T) {
	root := isolate(t)
	cfg := smallConfig(filepath.Join(root, "chaff"))
	cfg.MinimumRemainingDiskSpace = "1000000GB"

	if _, err := Generate(context.Background(), GenerateOptions{Config: cfg}); !errors.Is(err, cerrors.ErrInsufficientSpace) {
		t.Errorf("error = %v, want ErrInsufficientSpace", err)
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	root := isolate(t)
	cfg := smallConfig(filepath.Join(root, "chaff"))
	cfg.FileTypes = []string{"exe"}

	if _, err := Generate(context.Background(), GenerateOptions{Config: cfg}); !errors.Is(err, cerrors.ErrUnknownKind) {
		t.Errorf("error = %v, want ErrUnknownKind", err)
	}
}

func TestResolveSettingsReportsEveryParseError(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*configs.Config)
		want   error
	}{
		{"bad size", func(c *configs.Config) { c.MaxFileSize = "lots" }, cerrors.ErrInvalidSize},
		{"unknown kind", func(c *configs.Config) { c.FileTypes = []string{"exe"} }, cerrors.ErrUnknownKind},
		{"bad weights", func(c *configs.Config) { c.Encoding.Weights = map[string][]float64{"txt": {1}} }, cerrors.ErrInvalidWeights},
		{"bad suffix policy", func(c *configs.Config) { c.SuffixPolicy = "rename" }, cerrors.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig(t.TempDir())
			tt.modify(cfg)
			if _, err := resolveSettings(cfg); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	settings, err := resolveSettings(smallConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("resolveSettings failed on a valid config: %v", err)
	}
	if settings.limits.MinFileCount != 12 || len(settings.kinds) == 0 || settings.weights == nil {
		t.Errorf("settings = %+v", settings)
	}
}

func TestGenerateDeleteAfterCompletion(t *testing.T) {
	root := isolate(t)
	cfg := smallConfig(filepath.Join(root, "chaff"))
	cfg.DeleteAfterCompletion = true
	cfg.CleanupDelay = "1ms"

	result, err := Generate(context.Background(), GenerateOptions{Config: cfg, Seed: 3})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Cleaned == nil || len(result.Cleaned.Removed) != len(result.Written) {
		t.Fatalf("cleanup result = %+v", result.Cleaned)
	}
	for _, w := range result.Written {
		if _, err := os.Stat(w.Path); !os.IsNotExist(err) {
			t.Errorf("%s still exists", w.Path)
		}
	}
	if _, err := os.Stat(result.ManifestPath); !os.IsNotExist(err) {
		t.Error("manifest kept after complete cleanup")
	}
}

func TestDecodeUsesManifestPassword(t *testing.T) {
	root := isolate(t)
	cfg := smallConfig(filepath.Join(root, "chaff"))
	cfg.FileTypes = []string{"txt", "csv"}
	cfg.Encoding.Weights = map[string][]float64{
		"txt": {0, 0, 0, 0, 1, 0, 0},
		"csv": {0, 0, 0, 0, 1, 0, 0},
	}

	result, err := Generate(context.Background(), GenerateOptions{Config: cfg, Seed: 11})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Hint carriers are rewritten after encoding, so pick a protected file.
	var target *output.WrittenFile
	for _, w := range result.Written {
		if w.File.Method == encoding.SymmetricEncrypted {
			target = w
			break
		}
	}
	if target == nil {
		t.Fatal("no symmetric-encrypted file generated")
	}

	decoded, err := Decode(context.Background(), DecodeOptions{Path: target.Path})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.PasswordSource != PasswordManifest {
		t.Errorf("PasswordSource = %q, want manifest", decoded.PasswordSource)
	}
	if decoded.Method != encoding.SymmetricEncrypted {
		t.Errorf("Method = %s", decoded.Method)
	}
	if len(decoded.Content) == 0 {
		t.Error("decoded content is empty")
	}
}

func TestDecodeRequiresPassword(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "secret.csv.enc")
	if err := os.WriteFile(path, []byte("not really sealed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Decode(context.Background(), DecodeOptions{Path: path}); !errors.Is(err, cerrors.ErrPasswordRequired) {
		t.Errorf("error = %v, want ErrPasswordRequired", err)
	}
}

func TestDecodeBase64ToOutput(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.txt.b64")
	if err := os.WriteFile(in, []byte("aGVsbG8g\nd29ybGQ=\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "notes.txt")

	result, err := Decode(context.Background(), DecodeOptions{Path: in, OutputPath: out})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.SuggestedName != "notes.txt" {
		t.Errorf("SuggestedName = %q", result.SuggestedName)
	}
	data, err := os.ReadFile(out)
	if err != nil || string(data) != "hello world" {
		t.Errorf("output = %q, %v", data, err)
	}
}

func TestDecodeInMemoryContent(t *testing.T) {
	isolate(t)
	method := encoding.Base64URLSafe

	result, err := Decode(context.Background(), DecodeOptions{
		Path:    "-",
		Content: []byte("aGk_Pz8="),
		Method:  &method,
	})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(result.Content) != "hi???" {
		t.Errorf("content = %q, want %q", result.Content, "hi???")
	}
	if result.OutputPath != "" {
		t.Errorf("OutputPath = %q, want empty", result.OutputPath)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	isolate(t)
	if _, err := Decode(context.Background(), DecodeOptions{Path: "/nonexistent/file.b64"}); !errors.Is(err, cerrors.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}

func TestCleanLatestRun(t *testing.T) {
	root := isolate(t)
	gen, err := Generate(context.Background(), GenerateOptions{Config: smallConfig(filepath.Join(root, "chaff")), Seed: 5})
	if err != nil {
		t.Fatal(err)
	}

	preview, err := Clean(context.Background(), CleanOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry-run Clean failed: %v", err)
	}
	if preview.Manifest.RunID != gen.RunID || preview.Files != nil {
		t.Errorf("dry run = %+v", preview)
	}

	edited := gen.Written[0].Path
	if err := os.WriteFile(edited, []byte("user edit"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Clean(context.Background(), CleanOptions{})
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if len(result.Files.Removed) != len(gen.Written)-1 {
		t.Errorf("removed %d files, want %d", len(result.Files.Removed), len(gen.Written)-1)
	}
	if len(result.Files.Modified) != 1 || result.Files.Modified[0] != edited {
		t.Errorf("Modified = %v, want [%s]", result.Files.Modified, edited)
	}
	if result.ManifestRemoved {
		t.Error("manifest removed while a modified file remains")
	}
}

func TestCleanWithoutRuns(t *testing.T) {
	isolate(t)
	if _, err := Clean(context.Background(), CleanOptions{}); !errors.Is(err, cerrors.ErrManifestNotFound) {
		t.Errorf("error = %v, want ErrManifestNotFound", err)
	}
}
