package nutrivision

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect runtime configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration (API keys redacted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path, err := resolveDBPath(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		keys := cfg.Redacted()
		if len(keys) == 0 {
			fmt.Fprintln(out, "API keys: none (set NUTRIVISION_API_KEYS)")
		} else {
			fmt.Fprintf(out, "API keys: %s (%s)\n", strings.Join(keys, ", "), cfg.KeyStrategy)
		}
		fmt.Fprintf(out, "Model: %s\n", cfg.Model)
		fmt.Fprintf(out, "Base URL: %s\n", cfg.BaseURL)
		fmt.Fprintf(out, "Timeout: %s\n", cfg.Timeout)
		fmt.Fprintf(out, "Max retries: %d\n", cfg.MaxRetries)
		fmt.Fprintf(out, "Advice cache TTL: %s\n", cfg.AdviceCacheTTL)
		fmt.Fprintf(out, "Database: %s\n", path)
		fmt.Fprintf(out, "Log level: %s\n", cfg.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}
