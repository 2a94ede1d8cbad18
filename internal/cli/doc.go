// Package cli provides command-line interface setup and configuration
// for the menugloss application. It handles flag parsing, command
// creation, logging setup and configuration management using cobra and
// viper.
package cli
