package cli

import (
	"os"

	logging "github.com/ipfs/go-log/v2"
)

// SetupLogging routes every subsystem's logs to stderr and, when logFile
// is set, to that file as well. A scraping run is long and mostly
// waiting, so the default level is debug; GOLOG_LOG_LEVEL still takes
// precedence when set.
func SetupLogging(logFile string) {
	cfg := logging.GetConfig()
	cfg.Stderr = true
	cfg.Stdout = false
	cfg.File = logFile

	if _, set := os.LookupEnv("GOLOG_LOG_LEVEL"); !set {
		cfg.Level = logging.LevelDebug
		cfg.SubsystemLevels = nil
	}

	logging.SetupLogging(cfg)
}
