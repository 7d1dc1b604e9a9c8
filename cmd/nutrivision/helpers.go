package nutrivision

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Jayparmar2411/Nutrivision/internal/app"
	"github.com/Jayparmar2411/Nutrivision/internal/config"
	"github.com/Jayparmar2411/Nutrivision/internal/db"
	"github.com/Jayparmar2411/Nutrivision/internal/gateway"
	"github.com/Jayparmar2411/Nutrivision/internal/logger"
	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/service"
	"github.com/Jayparmar2411/Nutrivision/internal/store"
)

// runtimeEnv is what a command needs once the profile is open.
type runtimeEnv struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *store.Store
	out   io.Writer
}

func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger.New(cmd.ErrOrStderr(), cfg.LogLevel), nil
}

// withDB opens and migrates the profile database without loading state.
func withDB(cmd *cobra.Command, fn func(env *runtimeEnv, sqldb *sql.DB, path string) error) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path, err := resolveDBPath(cfg)
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return fn(&runtimeEnv{cfg: cfg, log: log, out: cmd.OutOrStdout()}, sqldb, path)
}

// withStore opens the profile and runs fn. Opening the profile is a session
// start, so the streak is advanced here.
func withStore(cmd *cobra.Command, fn func(*runtimeEnv) error) error {
	return withDB(cmd, func(env *runtimeEnv, sqldb *sql.DB, _ string) error {
		st, err := store.Open(store.NewKV(sqldb), env.log)
		if err != nil {
			return err
		}
		if _, err := service.TouchStreak(st, time.Now()); err != nil {
			return err
		}
		env.store = st
		return fn(env)
	})
}

func resolveDBPath(cfg *config.Config) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg != nil && strings.TrimSpace(cfg.DBPath) != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

func newGateway(cfg *config.Config, log zerolog.Logger, seed []model.CachedAdvice) (*gateway.Gateway, error) {
	pool, err := gateway.NewKeyPool(cfg.Keys(), cfg.KeyStrategy)
	if err != nil {
		return nil, err
	}
	backend := gateway.NewGeminiBackend(gateway.GeminiOptions{
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Keys:    pool,
		Timeout: cfg.Timeout,
	})
	return gateway.New(backend, gateway.Options{
		Logger:         log,
		MaxRetries:     cfg.MaxRetries,
		AdviceCacheTTL: cfg.AdviceCacheTTL,
		AdviceSeed:     seed,
	}), nil
}

func parseCountArg(name, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func parseDateOrToday(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := service.ParseDay(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

func formatEntryTime(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}
