package internal

// Version is the menugloss version string; release builds override it via
// -ldflags "-X github.com/menugloss/menugloss/internal.Version=...".
var Version = "0.1.0"
