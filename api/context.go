package api

// LintContext carries everything the host knows about one lint request.
type LintContext struct {
	// File being linted.
	File string
	// Temp file holding the buffered content of File, if the host materialized one.
	TempFile string
	// Modified is true if the buffered content differs from File on disk.
	Modified bool
	// Effective settings, ie. the adapter defaults merged with user overrides. If nil the adapter
	// defaults are used.
	Settings Settings
}
