package nutrivision

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jayparmar2411/Nutrivision/internal/gateway"
	"github.com/Jayparmar2411/Nutrivision/internal/session"
)

var (
	scanAdd    []string
	scanRemove []string
	scanNoSave bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <image|->",
	Short: "Analyse a food photo and log it",
	Long: "Analyse a food photo and log it. Pass '-' to read a data URL or base64 payload from stdin.\n" +
		"--add and --remove edit the ingredient list and trigger a recalculation before saving.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, imagePath, err := readScanImage(cmd, args[0])
		if err != nil {
			return err
		}
		return withStore(cmd, func(env *runtimeEnv) error {
			g, err := newGateway(env.cfg, env.log, nil)
			if err != nil {
				return err
			}
			analysis, err := g.Analyze(cmd.Context(), img)
			if err != nil {
				return userFacing(err)
			}

			sess := session.New(g)
			sess.Begin(analysis, imagePath, &img)
			edited, err := applyIngredientEdits(sess)
			if err != nil {
				return err
			}
			if edited {
				if _, err := sess.Recalculate(cmd.Context()); err != nil {
					if !gateway.IsRecalculationFailure(err) {
						return err
					}
					fmt.Fprintf(env.out, "Warning: %s\n", userFacing(err))
				}
			}

			current, _ := sess.Current()
			printAnalysis(env, current)
			if scanNoSave {
				sess.Discard()
				fmt.Fprintln(env.out, "Not saved (--no-save)")
				return nil
			}
			entry, err := sess.Save(env.store, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(env.out, "Saved entry %s\n", entry.ID)
			return nil
		})
	},
}

func readScanImage(cmd *cobra.Command, arg string) (gateway.Image, string, error) {
	if arg == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return gateway.Image{}, "", fmt.Errorf("read stdin: %w", err)
		}
		img, err := gateway.ParseDataURL(string(raw))
		return img, "", err
	}
	img, err := gateway.LoadImage(arg)
	if err != nil {
		return gateway.Image{}, "", err
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		abs = arg
	}
	return img, abs, nil
}

// applyIngredientEdits removes by name first, then adds. It reports whether
// the list changed.
func applyIngredientEdits(sess *session.Session) (bool, error) {
	changed := false
	for _, name := range scanRemove {
		current, _ := sess.Current()
		idx := indexOfIngredient(current.Ingredients, name)
		if idx < 0 {
			return false, fmt.Errorf("ingredient %q is not in the analysis", name)
		}
		if err := sess.RemoveIngredient(idx); err != nil {
			return false, err
		}
		changed = true
	}
	for _, name := range scanAdd {
		if err := sess.AddIngredient(name); err != nil {
			return false, err
		}
		changed = true
	}
	return changed, nil
}

func indexOfIngredient(list []string, name string) int {
	name = strings.TrimSpace(name)
	for i, ing := range list {
		if strings.EqualFold(ing, name) {
			return i
		}
	}
	return -1
}

func userFacing(err error) error {
	var f *gateway.AnalysisFailure
	if errors.As(err, &f) {
		return fmt.Errorf("%s (%s)", f.UserMessage(), f.Error())
	}
	return err
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringArrayVar(&scanAdd, "add", nil, "Ingredient to add (repeatable)")
	scanCmd.Flags().StringArrayVar(&scanRemove, "remove", nil, "Ingredient to remove by name (repeatable)")
	scanCmd.Flags().BoolVar(&scanNoSave, "no-save", false, "Show the analysis without logging it")
}
