// Package config provides configuration management for the A-Z listing
// service.
//
// Configuration is loaded from YAML files with environment variable
// overrides, validated as a whole, and exposed either as an explicit
// *Config or through a process-wide singleton used by the CLI.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("atoz.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("atoz.yaml")
//
// Files are decoded over NewDefaultConfig, so a file only needs the keys it
// changes. Unknown keys are rejected.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention ATOZ_SECTION_FIELD:
//
//   - ATOZ_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - ATOZ_STORE_SQLITE_DRIVER overrides store.sqlite.driver
//   - ATOZ_CAPABILITIES_FILE_PATH overrides capabilities.file_path
//   - ATOZ_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// A malformed value (for example a non-boolean ATOZ_CAPABILITIES_WATCH)
// fails loading instead of being ignored.
//
// # Validation
//
// Validation errors carry field paths:
//
//	configuration validation failed with 2 errors:
//	  - store.sqlite.driver: invalid driver "pg": must be 'sqlite' or 'sqlite3'
//	  - capabilities.resync_schedule: invalid cron expression "soon": ...
//
// # Example Configuration
//
//	server:
//	  listen_address: "0.0.0.0:8080"
//
//	store:
//	  backend: sqlite
//	  sqlite:
//	    path: data/atoz.db
//
//	capabilities:
//	  file_path: capabilities.yaml
//	  watch: true
//	  resync_schedule: "*/5 * * * *"
//
//	alpha:
//	  param_name: alpha_filter
//	  legacy_param_names: [alpha]
//
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
package config
