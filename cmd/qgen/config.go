package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalambet/qgen/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.DefaultStore().Load()
		if err != nil {
			return err
		}
		showConfig(cmd.OutOrStdout(), cfg)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value.\n\nValid keys:\n  " + strings.Join(config.ValidKeys(), "\n  "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.DefaultStore().SetKey(key, value); err != nil {
			return err
		}
		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.DefaultStore().UnsetKey(args[0]); err != nil {
			return err
		}
		printSuccess("Unset %s", args[0])
		return nil
	},
}

var configSetSecretCmd = &cobra.Command{
	Use:   "set-secret <key> [value]",
	Short: "Store an API credential",
	Long: "Store an API credential. Without a value it is read from stdin.\n\nSecret keys:\n  " +
		strings.Join(config.SecretKeys(), "\n  "),
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := ""
		if len(args) == 2 {
			value = args[1]
		} else {
			v, err := readSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}
			value = v
		}
		if err := config.DefaultStore().SetSecret(key, value); err != nil {
			return err
		}
		printSuccess("Stored %s", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configSetSecretCmd)
}

func showConfig(w io.Writer, cfg config.Config) {
	for _, k := range config.ShowAll(cfg) {
		fmt.Fprintf(w, "  %s = %s\n", colorize(styleBold, k.Key), k.Value)
	}

	status := config.SecretStatus(cfg)
	keys := make([]string, 0, len(status))
	for k := range status {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		state := colorize(styleDim, "(not set)")
		if status[k] {
			state = colorize(styleSuccess, "(set)")
		}
		fmt.Fprintf(w, "  %s %s\n", colorize(styleBold, k), state)
	}
}

func readSecret(r io.Reader) (string, error) {
	if f, ok := r.(*os.File); ok && f == os.Stdin {
		fmt.Fprint(os.Stderr, "Value: ")
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return strings.TrimSpace(line), nil
}
