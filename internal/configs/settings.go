package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	ConfigDir     string
	ConfigPath    string
	DataDir       string
	ManifestsPath string
	AuditLogPath  string
	DefaultTarget string
}

var UserChaffSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	UserChaffSettings = newUserSettings(homeDir, configDir, dataDir)
}

func newUserSettings(homeDir, configDir, dataDir string) *UserSettings {
	chaffConfig := filepath.Join(configDir, "chaff")
	chaffData := filepath.Join(dataDir, "chaff")
	return &UserSettings{
		ConfigDir:     chaffConfig,
		ConfigPath:    filepath.Join(chaffConfig, "config.toml"),
		DataDir:       chaffData,
		ManifestsPath: filepath.Join(chaffData, "manifests"),
		AuditLogPath:  filepath.Join(chaffConfig, "audit.jsonl"),
		DefaultTarget: filepath.Join(homeDir, ".chaff"),
	}
}
