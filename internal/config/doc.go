// Package config provides the configuration system for backchannel.
//
// Two kinds of configuration live here. The application config tells the
// client where its data and session files are and how loud to be. The
// session settings (TARGET, PASSKEY, HTTP_* headers...) are handled by the
// registry sub-package and persisted between runs.
//
// # Architecture
//
// Application config is merged from three sources, higher overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← BACKCHANNEL_DATA_DIR, ...
//	├─────────────────────────────┤
//	│  2. User Config File        │  ← ~/.config/backchannel/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// Session settings are written in this order: declared defaults, the saved
// session, then BACKCHANNEL_SET_<NAME> environment overrides.
//
// # Sub-packages
//
//   - buffer: Literal and random line value buffers, file binding
//   - registry: Setting descriptors, the settings registry and its docs
//   - validate: Value validators used by setting descriptors
//   - loader: TOML config and session files, environment variables
//   - notify: Change notification for registry writes
//
// # Configuration Files
//
//	# ~/.config/backchannel/config.toml
//	[paths]
//	dataDir = "/usr/share/backchannel"
//	session = "~/.local/state/backchannel/session.toml"
//
//	[logging]
//	verbose = true
//
// # Error Handling
//
//   - ErrSettingNotFound: Config path doesn't exist
//   - ErrTypeMismatch: Value type doesn't match expected type
//   - loader.ParseError: Configuration file parsing failed
package config
