package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/menugloss/menugloss/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "menugloss",
		Short: "Chinese restaurant menu translation and enrichment",
		Long: `menugloss walks a directory of restaurant menu JSON files and rewrites
every Chinese string into a record carrying the original text, its
pinyin, an English translation and, for priced menu items, a Google
knowledge panel snippet and an image thumbnail.

Examples:
  menugloss --menus ./menus --webdriver chrome --webdriver-path ./chromedriver --gapps key.json
  menugloss --menus ./menus --skip-search --gapps key.json
  menugloss --gapps key.json --list-languages
  menugloss --menus ./menus --archive`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.menugloss.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.MenusDir, "menus", "", "Directory containing menu JSON files")
	cmd.Flags().StringVar(&flags.GappsFile, "gapps", "", "Path to Google application credentials JSON")
	cmd.Flags().StringVar(&flags.LogFile, "log", "", "Log file (logs always go to stderr as well)")

	// WebDriver flags
	cmd.Flags().StringVar(&flags.WebDriver, "webdriver", "", "Browser driver for web lookups: chrome or firefox")
	cmd.Flags().StringVar(&flags.WebDriverPath, "webdriver-path", "", "Path to the chromedriver or geckodriver binary")
	cmd.Flags().IntVar(&flags.WebDriverPort, "webdriver-port", flags.WebDriverPort, "Port for the driver service to listen on")

	// Translation flags
	cmd.Flags().StringVar(&flags.Translator, "translator", flags.Translator, "Translation backend: google, openai or gemini")
	cmd.Flags().StringVar(&flags.SourceLang, "source-lang", flags.SourceLang, "Language to translate from")
	cmd.Flags().StringVar(&flags.TargetLang, "target-lang", flags.TargetLang, "Language to translate into")

	// Search flags
	cmd.Flags().DurationVar(&flags.SearchDelay, "search-delay", flags.SearchDelay, "Pause after each pair of web lookups")
	cmd.Flags().BoolVar(&flags.SkipSearch, "skip-search", false, "Skip the price-triggered web lookups")

	// Mode flags
	cmd.Flags().BoolVar(&flags.ListLanguages, "list-languages", false, "List languages the translation backend supports")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move processed outputs into a timestamped archive directory")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("menus", cmd.Flags().Lookup("menus"))
	viper.BindPFlag("gapps", cmd.Flags().Lookup("gapps"))
	viper.BindPFlag("webdriver.name", cmd.Flags().Lookup("webdriver"))
	viper.BindPFlag("webdriver.path", cmd.Flags().Lookup("webdriver-path"))
	viper.BindPFlag("webdriver.port", cmd.Flags().Lookup("webdriver-port"))
	viper.BindPFlag("translation.backend", cmd.Flags().Lookup("translator"))
	viper.BindPFlag("translation.source_lang", cmd.Flags().Lookup("source-lang"))
	viper.BindPFlag("translation.target_lang", cmd.Flags().Lookup("target-lang"))
	viper.BindPFlag("search.delay", cmd.Flags().Lookup("search-delay"))
}

// ApplyConfig fills flags the command line left untouched from the
// config file. An explicit flag always wins over the file.
func ApplyConfig(cmd *cobra.Command, flags *Flags) {
	if !cmd.Flags().Changed("menus") {
		flags.MenusDir = viper.GetString("menus")
	}
	if !cmd.Flags().Changed("gapps") {
		flags.GappsFile = viper.GetString("gapps")
	}
	if !cmd.Flags().Changed("webdriver") {
		flags.WebDriver = viper.GetString("webdriver.name")
	}
	if !cmd.Flags().Changed("webdriver-path") {
		flags.WebDriverPath = viper.GetString("webdriver.path")
	}
	if !cmd.Flags().Changed("webdriver-port") {
		flags.WebDriverPort = viper.GetInt("webdriver.port")
	}
	if !cmd.Flags().Changed("translator") {
		flags.Translator = viper.GetString("translation.backend")
	}
	if !cmd.Flags().Changed("source-lang") {
		flags.SourceLang = viper.GetString("translation.source_lang")
	}
	if !cmd.Flags().Changed("target-lang") {
		flags.TargetLang = viper.GetString("translation.target_lang")
	}
	if !cmd.Flags().Changed("search-delay") {
		flags.SearchDelay = viper.GetDuration("search.delay")
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".menugloss" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".menugloss")
	}

	// Environment variables
	viper.SetEnvPrefix("MENUGLOSS")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ExportGoogleCredentials points every Google client library at the
// --gapps file through the environment variable they all understand.
func ExportGoogleCredentials(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve credentials path: %w", err)
	}
	return os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", abs)
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("translation.gemini_key")
}
