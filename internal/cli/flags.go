package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	MenusDir  string
	GappsFile string
	LogFile   string

	// WebDriver flags
	WebDriver     string
	WebDriverPath string
	WebDriverPort int

	// Translation flags
	Translator string
	SourceLang string
	TargetLang string

	// Search flags
	SearchDelay time.Duration
	SkipSearch  bool

	// Mode flags
	ListLanguages bool
	Archive       bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		WebDriverPort: 4444,
		Translator:    "google",
		SourceLang:    "zh-CN",
		TargetLang:    "en",
		SearchDelay:   500 * time.Millisecond,
	}
}

// Missing returns the required flags a full enrichment run still lacks.
// The web lookup flags are only required when the lookups are not
// skipped, and --gapps only when the Google translation backend is in
// use.
func (f *Flags) Missing() []string {
	var missing []string
	if f.MenusDir == "" {
		missing = append(missing, "--menus")
	}
	if !f.SkipSearch {
		if f.WebDriver == "" {
			missing = append(missing, "--webdriver")
		}
		if f.WebDriverPath == "" {
			missing = append(missing, "--webdriver-path")
		}
	}
	if f.Translator == "google" && f.GappsFile == "" {
		missing = append(missing, "--gapps")
	}
	return missing
}
