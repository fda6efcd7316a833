// Package configs loads and validates the generator's settings.
//
// Settings live in a TOML file, by default <UserConfigDir>/chaff/config.toml.
// Values are resolved in this order, later winning:
//
//   - DefaultConfig
//   - the config file, if present
//   - CHAFF_* environment variables (CHAFF_TARGET_DIRECTORY, CHAFF_SEED, ...)
//
// Sizes are strings such as "0.1MB" or "500KB" and are parsed by Limits.
// Validate separates hard errors (unparsable values, unknown kinds, bad
// encoding weights) from warnings such as a minimum larger than a maximum.
//
// # Paths
//
// UserChaffSettings is initialized at startup and holds the config file
// location, the manifests directory used by cleanup, and the audit log.
//
// # Migration
//
// Older installs kept settings in a .env file. MigrateEnvFile converts one
// into config.toml, backing up any existing config first.
package configs
