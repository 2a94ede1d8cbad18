package cli

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if cmd.Use != "menugloss" {
		t.Errorf("Expected Use to be 'menugloss', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "menu") {
		t.Errorf("Expected Short description to mention menus, got %q", cmd.Short)
	}

	flagNames := []string{
		"config",
		"menus",
		"gapps",
		"log",
		"webdriver",
		"webdriver-path",
		"webdriver-port",
		"translator",
		"source-lang",
		"target-lang",
		"search-delay",
		"skip-search",
		"list-languages",
		"archive",
	}
	for _, name := range flagNames {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if name == "config" {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}
}

func TestSetupFlagDefaults(t *testing.T) {
	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	portFlag := cmd.Flags().Lookup("webdriver-port")
	if portFlag == nil {
		t.Fatal("webdriver-port flag not found")
	}
	if portFlag.DefValue != "4444" {
		t.Errorf("Expected default webdriver port 4444, got %s", portFlag.DefValue)
	}

	delayFlag := cmd.Flags().Lookup("search-delay")
	if delayFlag == nil {
		t.Fatal("search-delay flag not found")
	}
	if delayFlag.DefValue != "500ms" {
		t.Errorf("Expected default search delay 500ms, got %s", delayFlag.DefValue)
	}

	translatorFlag := cmd.Flags().Lookup("translator")
	if translatorFlag == nil {
		t.Fatal("translator flag not found")
	}
	if translatorFlag.DefValue != "google" {
		t.Errorf("Expected default translator google, got %s", translatorFlag.DefValue)
	}
}

func TestInitConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	viper.Reset()
	InitConfig("")

	os.Setenv("MENUGLOSS_TEST_VAR", "test-value")
	defer os.Unsetenv("MENUGLOSS_TEST_VAR")

	if viper.GetString("test_var") != "test-value" {
		t.Error("Environment variable not properly loaded")
	}
}

func TestApplyConfig(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()
	viper.Reset()

	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	viper.Set("menus", "/from/config")
	viper.Set("translation.backend", "gemini")
	viper.Set("search.delay", "2s")

	// An explicit flag must win over the config file.
	if err := cmd.Flags().Set("translator", "openai"); err != nil {
		t.Fatal(err)
	}

	ApplyConfig(cmd, flags)

	if flags.MenusDir != "/from/config" {
		t.Errorf("MenusDir = %q, want config value", flags.MenusDir)
	}
	if flags.Translator != "openai" {
		t.Errorf("Translator = %q, want flag value to win", flags.Translator)
	}
	if flags.SearchDelay != 2*time.Second {
		t.Errorf("SearchDelay = %v, want 2s", flags.SearchDelay)
	}
	if flags.WebDriverPort != 4444 {
		t.Errorf("WebDriverPort = %d, want default kept", flags.WebDriverPort)
	}
}

func TestGetOpenAIKey(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{"from environment", "env-test-key", "config-test-key", "env-test-key"},
		{"from config when no env", "", "config-test-key", "config-test-key"},
		{"empty when neither set", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()

			if tt.envKey != "" {
				os.Setenv("OPENAI_API_KEY", tt.envKey)
				defer os.Unsetenv("OPENAI_API_KEY")
			} else {
				os.Unsetenv("OPENAI_API_KEY")
			}

			if tt.configKey != "" {
				viper.Set("translation.openai_key", tt.configKey)
			}

			if got := GetOpenAIKey(); got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetGeminiKey(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()
	viper.Reset()

	os.Setenv("GEMINI_API_KEY", "gm-key")
	defer os.Unsetenv("GEMINI_API_KEY")

	if got := GetGeminiKey(); got != "gm-key" {
		t.Errorf("GetGeminiKey() = %v, want gm-key", got)
	}
}

func TestExportGoogleCredentials(t *testing.T) {
	original, had := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	defer func() {
		if had {
			os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", original)
		} else {
			os.Unsetenv("GOOGLE_APPLICATION_CREDENTIALS")
		}
	}()

	if err := ExportGoogleCredentials("key.json"); err != nil {
		t.Fatalf("ExportGoogleCredentials() error = %v", err)
	}

	got := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if got == "" {
		t.Fatal("GOOGLE_APPLICATION_CREDENTIALS not set")
	}
	if !strings.HasSuffix(got, "key.json") {
		t.Errorf("GOOGLE_APPLICATION_CREDENTIALS = %q, want absolute path to key.json", got)
	}
}
