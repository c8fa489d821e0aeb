// Package config handles configuration management for subpack.
//
// Configuration is layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user-wide file $XDG_CONFIG_HOME/subpack/config.toml
//  3. the project file (subpack.toml, .subpack.toml, subpack.yaml or
//     subpack.yml in the working directory, or an explicit path)
//  4. SUBPACK_* environment variables, after loading .env from the working
//     directory. A double underscore separates nested keys, so
//     SUBPACK_RSYNC__BINARY sets rsync.binary.
//
// UNI_SUBPACKAGE, set by the bundler, supplies the subpackage directory when
// it is not configured otherwise. The platform of the current build is not
// configuration: the CLI reads it from --platform or UNI_PLATFORM. Flags are
// applied on top by the CLI.
package config
