package nutrivision

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/service"
)

var adviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Ask the AI coach about today's meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(env *runtimeEnv) error {
			caching := env.cfg.AdviceCacheTTL > 0
			var seed []model.CachedAdvice
			if caching {
				var err error
				if seed, err = env.store.AdviceCache(); err != nil {
					return err
				}
			}
			g, err := newGateway(env.cfg, env.log, seed)
			if err != nil {
				return err
			}
			text, err := service.TodaysAdvice(cmd.Context(), env.store, g, time.Now())
			if err != nil {
				return err
			}
			if caching {
				if err := env.store.SaveAdviceCache(g.CachedAdvice()); err != nil {
					env.log.Warn().Err(err).Msg("advice cache not saved")
				}
			}
			fmt.Fprintln(env.out, text)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(adviceCmd)
}
