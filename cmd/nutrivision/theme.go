package nutrivision

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light]",
	Short:     "Show or set the display theme preference",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(model.ThemeDark), string(model.ThemeLight)},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(env *runtimeEnv) error {
			if len(args) == 1 {
				t := model.Theme(strings.ToLower(strings.TrimSpace(args[0])))
				if err := env.store.SetTheme(t); err != nil {
					return err
				}
			}
			t, err := env.store.Theme()
			if err != nil {
				return err
			}
			fmt.Fprintf(env.out, "Theme: %s\n", t)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
