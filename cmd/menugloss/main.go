package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/menugloss/menugloss/internal/archive"
	"github.com/menugloss/menugloss/internal/cli"
	"github.com/menugloss/menugloss/internal/processor"
	"github.com/menugloss/menugloss/internal/search"
	"github.com/menugloss/menugloss/internal/translation"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	cli.SetupLogging(flags.LogFile)
	cli.ApplyConfig(cmd, flags)

	// Handle --archive flag
	if flags.Archive {
		if flags.MenusDir == "" {
			return fmt.Errorf("--menus is required to locate the outputs to archive")
		}
		if err := archive.ArchiveOutputs(flags.MenusDir); err != nil {
			return fmt.Errorf("failed to archive outputs: %w", err)
		}
		return nil
	}

	ctx := context.Background()

	// Handle --list-languages flag
	if flags.ListLanguages {
		return listLanguages(ctx, flags)
	}

	if missing := flags.Missing(); len(missing) > 0 {
		return fmt.Errorf("required flags not set: %s", strings.Join(missing, ", "))
	}

	translator, err := newTranslator(ctx, flags)
	if err != nil {
		return err
	}
	defer translator.Close()

	// A run visits many menus; stop hammering a failing backend early.
	translator = translation.NewBreaker(translator)

	var searcher processor.Searcher
	if !flags.SkipSearch {
		browser, err := search.ParseWebDriver(flags.WebDriver)
		if err != nil {
			return err
		}

		service, err := search.NewService(browser, flags.WebDriverPath, flags.WebDriverPort)
		if err != nil {
			return fmt.Errorf("failed to start the %s driver: %w", browser, err)
		}
		defer service.Stop()

		engine, err := search.NewEngine(service)
		if err != nil {
			return fmt.Errorf("failed to open a browser session: %w", err)
		}
		defer engine.Close()
		searcher = engine
	}

	driver := processor.New(processor.Config{
		MenusDir:    flags.MenusDir,
		Translator:  translator,
		Searcher:    searcher,
		SearchDelay: flags.SearchDelay,
	})
	return driver.Run(ctx)
}

func newTranslator(ctx context.Context, flags *cli.Flags) (translation.Translator, error) {
	if flags.GappsFile != "" {
		if err := cli.ExportGoogleCredentials(flags.GappsFile); err != nil {
			return nil, err
		}
	}

	config := translation.DefaultConfig()
	config.Provider = flags.Translator
	config.SourceLang = flags.SourceLang
	config.TargetLang = flags.TargetLang
	config.CredentialsFile = flags.GappsFile
	config.OpenAIKey = cli.GetOpenAIKey()
	config.GeminiKey = cli.GetGeminiKey()

	translator, err := translation.NewTranslator(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s translator: %w", flags.Translator, err)
	}
	return translator, nil
}

func listLanguages(ctx context.Context, flags *cli.Flags) error {
	translator, err := newTranslator(ctx, flags)
	if err != nil {
		return err
	}
	defer translator.Close()

	lister, ok := translator.(translation.LanguageLister)
	if !ok {
		return fmt.Errorf("the %s backend cannot enumerate its languages", translator.Name())
	}

	languages, err := lister.SupportedLanguages(ctx)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}

	fmt.Printf("Languages supported by the %s backend:\n", translator.Name())
	for _, lang := range languages {
		fmt.Printf("  %-10s %-30s %s\n", lang.Code, lang.Name, directions(lang))
	}
	return nil
}

func directions(lang translation.Language) string {
	switch {
	case lang.SupportSource && lang.SupportTarget:
		return "source, target"
	case lang.SupportSource:
		return "source"
	case lang.SupportTarget:
		return "target"
	}
	return ""
}
