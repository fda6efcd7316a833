package configs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MigrationResult contains information about what was migrated.
type MigrationResult struct {
	ConfigPath   string
	BackupPath   string
	MigratedKeys []string
	IgnoredKeys  []string
}

// legacyKeys are the settings an older .env based install understood.
var legacyKeys = map[string]string{
	"TARGET_DIRECTORY":             "TARGET_DIRECTORY",
	"DELETE_AFTER_COMPLETION":      "DELETE_AFTER_COMPLETION",
	"FILL_DRIVE":                   "FILL_DRIVE",
	"MIN_FILE_SIZE":                "MIN_FILE_SIZE",
	"MAX_FILE_SIZE":                "MAX_FILE_SIZE",
	"MINIMUM_REMAINING_DISK_SPACE": "MINIMUM_REMAINING_DISK_SPACE",
	"MIN_FILE_COUNT":               "MIN_FILE_COUNT",
	"MAX_FILE_COUNT":               "MAX_FILE_COUNT",
	"CHAFF_FILE_TYPES":             "FILE_TYPES",
	"INCLUDE_LANGUAGES":            "LANGUAGES",
}

// IsLegacyEnvFile reports whether path is a .env file holding at least
// one setting from the older format.
func IsLegacyEnvFile(path string) bool {
	values, err := readEnvFile(path)
	if err != nil {
		return false
	}
	for key := range values {
		if _, ok := legacyKeys[key]; ok {
			return true
		}
	}
	return false
}

// MigrateEnvFile converts a legacy .env file into a TOML config at
// configPath. An existing config is backed up first.
func MigrateEnvFile(envPath, configPath string) (*MigrationResult, error) {
	values, err := readEnvFile(envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", envPath, err)
	}

	result := &MigrationResult{ConfigPath: configPath}
	translated := make(map[string]string, len(values))
	for key, value := range values {
		if target, ok := legacyKeys[key]; ok {
			translated["CHAFF_"+target] = value
			result.MigratedKeys = append(result.MigratedKeys, key)
		} else {
			result.IgnoredKeys = append(result.IgnoredKeys, key)
		}
	}
	sort.Strings(result.MigratedKeys)
	sort.Strings(result.IgnoredKeys)

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := translated[k]
		return v, ok
	}); err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); err == nil {
		backupPath, err := createBackup(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create backup: %w", err)
		}
		result.BackupPath = backupPath
	}

	if err := SaveConfig(configPath, cfg); err != nil {
		return nil, err
	}
	return result, nil
}

// readEnvFile parses KEY=VALUE lines, skipping blanks and # comments.
// Surrounding quotes on values are removed.
func readEnvFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}
		values[strings.TrimSpace(key)] = value
	}
	return values, scanner.Err()
}

// createBackup copies path next to itself with a timestamp suffix.
func createBackup(path string) (string, error) {
	backupPath := filepath.Join(filepath.Dir(path),
		filepath.Base(path)+".backup-"+time.Now().Format("20060102-150405"))
	if err := copyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to copy file: %w", err)
	}
	return backupPath, nil
}

// copyFile copies a single file.
func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode())
}
