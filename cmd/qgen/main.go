package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:           "qgen",
	Short:         "Generate interview questions for a role, skill set and level",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if os.Getenv("NO_COLOR") != "" {
			noColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(followupCmd)
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}
