package config

// Version is the leadvault binary version.
// Set at build time via: -ldflags "-X github.com/leadvaulthq/leadvault/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
