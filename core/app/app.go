package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/rankcache/core/cache"
	"github.com/codewandler/rankcache/ports/ranking"
)

// CacheConfig is the tunable subset of cache.Config, one per entity kind.
// Zero values fall back to the cache defaults.
type CacheConfig struct {
	MaxEntries    int           `env:"MAX_ENTRIES"`
	TTL           time.Duration `env:"TTL"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

// EnvConfig maps the RANKCACHE_* environment to per-cache configuration.
type EnvConfig struct {
	Rankings CacheConfig `envPrefix:"RANKCACHE_RANKINGS_"`
	Profiles CacheConfig `envPrefix:"RANKCACHE_PROFILES_"`
}

// ConfigFromEnv reads cache tuning from the environment.
func ConfigFromEnv() (EnvConfig, error) {
	cfg, err := env.ParseAs[EnvConfig]()
	if err != nil {
		return EnvConfig{}, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}

type Config struct {
	Context context.Context
	Log     *slog.Logger
	// Store is the remote document store. Required.
	Store ranking.Store
	// Rankings / Profiles tune the two caches.
	Rankings CacheConfig
	Profiles CacheConfig
	// Metrics, when set, builds the Metrics backend for a cache by name
	// (see the prometheus adapter). Nil means no instrumentation.
	Metrics func(name string) cache.Metrics
}

// App owns the two ranking caches over one document store and ties their
// sweep lifecycles to its own. Construct with New, start with Run and make
// sure Stop runs on teardown.
type App struct {
	id        string
	ctx       context.Context
	cancelCtx context.CancelFunc
	log       *slog.Logger

	rankings *cache.Cache[*ranking.LeagueRanking]
	profiles *cache.Cache[*ranking.UserProfile]
	filters  ranking.FilterMemo

	stopOnce sync.Once
}

func New(config Config) (app *App, err error) {
	if config.Store == nil {
		return nil, errors.New("store is required")
	}

	app = &App{
		id: fmt.Sprintf("rankcache-%s", gonanoid.Must(6)),
	}

	// === logger ===
	if config.Log == nil {
		config.Log = slog.Default()
	}
	app.log = config.Log.With(slog.String("instance", app.id))

	// === context ===
	if config.Context == nil {
		config.Context = context.Background()
	}
	app.ctx, app.cancelCtx = context.WithCancel(config.Context)

	metricsFor := config.Metrics
	if metricsFor == nil {
		metricsFor = func(string) cache.Metrics { return nil }
	}

	// === caches ===
	store := config.Store
	app.rankings, err = cache.New[*ranking.LeagueRanking](cache.Config{
		Name:          "rankings",
		MaxEntries:    config.Rankings.MaxEntries,
		TTL:           config.Rankings.TTL,
		SweepInterval: config.Rankings.SweepInterval,
		Log:           app.log,
		Metrics:       metricsFor("rankings"),
	}, func(ctx context.Context, key string) (*ranking.LeagueRanking, error) {
		leagueID, ok := ranking.ParseLeagueKey(key)
		if !ok {
			return nil, fmt.Errorf("malformed league key %q", key)
		}
		return store.Rankings(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}

	app.profiles, err = cache.New[*ranking.UserProfile](cache.Config{
		Name:          "profiles",
		MaxEntries:    config.Profiles.MaxEntries,
		TTL:           config.Profiles.TTL,
		SweepInterval: config.Profiles.SweepInterval,
		Log:           app.log,
		Metrics:       metricsFor("profiles"),
	}, func(ctx context.Context, key string) (*ranking.UserProfile, error) {
		userID, ok := ranking.ParseProfileKey(key)
		if !ok {
			return nil, fmt.Errorf("malformed profile key %q", key)
		}
		return store.Profile(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	return app, nil
}

// Run starts both sweep schedulers and arranges for Stop to run when the
// owning context is cancelled.
func (a *App) Run() {
	a.rankings.Start()
	a.profiles.Start()

	go func() {
		<-a.ctx.Done()
		a.Stop()
	}()

	a.log.Info("app started")
}

// Stop cancels the app context and stops both sweeps. Idempotent.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		a.cancelCtx()
		a.rankings.Stop()
		a.profiles.Stop()
		a.log.Info("app stopped")
	})
}

// ID is the instance identifier, mostly for log correlation.
func (a *App) ID() string { return a.id }

// Rankings is the league standings cache.
func (a *App) Rankings() *cache.Cache[*ranking.LeagueRanking] { return a.rankings }

// Profiles is the user profile cache.
func (a *App) Profiles() *cache.Cache[*ranking.UserProfile] { return a.profiles }

// Ranking returns the standings for a league, cached.
func (a *App) Ranking(ctx context.Context, leagueID string, opts ...cache.GetOption) (*ranking.LeagueRanking, error) {
	return a.rankings.Get(ctx, ranking.LeagueKey(leagueID), opts...)
}

// Profile returns a user profile, cached.
func (a *App) Profile(ctx context.Context, userID string, opts ...cache.GetOption) (*ranking.UserProfile, error) {
	return a.profiles.Get(ctx, ranking.ProfileKey(userID), opts...)
}

// InvalidateLeague drops a league's cached standings.
func (a *App) InvalidateLeague(leagueID string) {
	a.rankings.Invalidate(ranking.LeagueKey(leagueID))
}

// InvalidateUser drops a user's cached profile.
func (a *App) InvalidateUser(userID string) {
	a.profiles.Invalidate(ranking.ProfileKey(userID))
}

// FilterOptions derives league filter options, memoized on the content
// fingerprint of the inputs.
func (a *App) FilterOptions(collections ...[]ranking.LeagueRef) ranking.FilterOptions {
	return a.filters.Options(collections...)
}
