// Package key defines the configuration identifiers used across pipewatch.
package key

// DefinedFieldsCount is the number of registered configuration fields.
const DefinedFieldsCount = 20

// Catalog - the stream proxy that resolves a video to its tracks.
const (
	CatalogInstance = "catalog.instance"
	CatalogCacheTTL = "catalog.cache_ttl"
	CatalogFrontend = "catalog.frontend"
)

// SponsorBlock - the segment service feeding the skip engine.
const (
	SponsorBlockEnable     = "sponsorblock.enable"
	SponsorBlockAPI        = "sponsorblock.api"
	SponsorBlockCategories = "sponsorblock.categories"
)

// Player - format preference and synchronizer behaviour.
const (
	PlayerFormat   = "player.format"
	PlayerQuality  = "player.quality"
	PlayerPlatform = "player.platform"
	PlayerAutoplay = "player.autoplay"
	PlayerVolume   = "player.volume"
	PlayerSeekStep = "player.seek_step"
)

// TUI
const (
	TUIIdleTimeout = "tui.idle_timeout"
)

// History
const (
	HistorySave = "history.save"
)

// Iconography
const (
	IconsVariant = "icons.variant"
)

// Logging
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
