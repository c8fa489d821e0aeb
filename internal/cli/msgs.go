package cli

// Command descriptions
const (
	MsgRootShort = "Mirror a mini-program build into a native app subpackage"
	MsgRootLong  = `subpack post-processes a mini-program build: it rewrites configured files in
the build output and mirrors the output directory into a subpackage of a native
mini-program project with rsync.

Only builds for the configured platform (mp-weixin by default) are processed.
The build platform is read from --platform or $UNI_PLATFORM.`

	MsgRunShort   = "Rewrite and mirror a build output directory once"
	MsgRunExample = `  # Mirror the production build
  UNI_PLATFORM=mp-weixin subpack run dist/build/mp-weixin

  # Preview what would be synced
  subpack run dist/build/mp-weixin --platform mp-weixin --dry-run`

	MsgWatchShort = "Re-run the pipeline whenever the build output changes"
	MsgWatchLong  = `watch runs the pipeline once, then again each time the build output directory
settles after a change. Use it next to a bundler running in watch mode. Failed
runs are reported and watching continues.`
	MsgWatchExample = `  subpack watch dist/dev/mp-weixin --platform mp-weixin`

	MsgGenConfigShort   = "Print or write a starter configuration file"
	MsgGenConfigExample = `  subpack genconfig                 # TOML to stdout
  subpack genconfig --format yaml   # YAML to stdout
  subpack genconfig -w              # write ./subpack.toml`

	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"
)

// Status messages
const (
	MsgSkipped         = "skipped: build platform %q is not %q"
	MsgSynced          = "synced %s -> %s"
	MsgDryRunNotice    = "DRY RUN - no files were written"
	MsgConfigWritten   = "wrote %s"
	MsgConfigExists    = "%s already exists, not overwriting"
	MsgWatchStopped    = "stopped watching"
	MsgMetricsWriteErr = "failed to write metrics textfile"
)
