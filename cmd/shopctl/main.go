package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"shopctl/cmd/shopctl/ui"
	"shopctl/internal/api"
	"shopctl/internal/billing"
	"shopctl/internal/catalog"
	"shopctl/internal/config"
	"shopctl/internal/logging"
	"shopctl/internal/media"
	"shopctl/internal/orders"
	"shopctl/internal/pages"
	"shopctl/internal/reviews"
	"shopctl/internal/session"
	"shopctl/internal/store"
	"shopctl/internal/users"
)

var (
	// Global flags
	verbose   bool
	configDir string
	baseURL   string

	// Logger for non-interactive commands
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "shopctl - terminal admin console for your storefront",
	Long: `shopctl is a terminal admin console for a storefront CMS.

It talks to the admin API with your bearer token and gives you the whole
panel in the terminal: catalog, pages, orders, reviews, users, billing.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive UI has its own surface; zap is for one-shot
		// commands.
		if cmd.Use == "shopctl" && cmd.CalledAs() == "shopctl" {
			return nil
		}
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// app bundles everything a command needs after startup.
type app struct {
	dir     string
	cfg     config.Config
	sess    *session.Session
	client  *api.Client
	store   *store.Store
	watcher *config.Watcher

	categories *catalog.Categories
	products   *catalog.Products
	pages      *pages.Service
	orders     *orders.Service
	users      *users.Service
	reviews    *reviews.Service
	media      *media.Service
	currencies *billing.Currencies
	promos     *billing.Promos
	providers  *billing.Providers
}

// newApp loads config and session, starts logging, and wires the services.
func newApp() (*app, error) {
	dir := configDir
	if dir == "" {
		var err error
		dir, err = config.DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(config.Path(dir))
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	if err := logging.Initialize(dir, logging.Settings{
		DebugMode:  cfg.Logging.DebugMode || verbose,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
		JSONFormat: cfg.Logging.JSONFormat,
	}); err != nil {
		return nil, err
	}
	logging.Boot("shopctl starting (config=%s)", dir)

	sess, err := session.Load(dir)
	if err != nil {
		return nil, err
	}

	client := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.RequestTimeout(),
	}, sess)

	st, err := store.Open(filepath.Join(dir, "state.db"))
	if err != nil {
		// Local state is a convenience; the panel works without it.
		logging.Get(logging.CategoryStore).Warn("local store unavailable: %v", err)
		st = nil
	}

	a := &app{
		dir:        dir,
		cfg:        cfg,
		sess:       sess,
		client:     client,
		store:      st,
		categories: catalog.NewCategories(client),
		products:   catalog.NewProducts(client),
		pages:      pages.NewService(client),
		orders:     orders.NewService(client),
		users:      users.NewService(client),
		reviews:    reviews.NewService(client),
		media:      media.NewService(client),
		currencies: billing.NewCurrencies(client),
		promos:     billing.NewPromos(client),
		providers:  billing.NewProviders(client),
	}

	// Hot-reload config: base URL and logging settings apply live.
	w, err := config.NewWatcher(config.Path(dir), func(next config.Config) {
		if baseURL == "" {
			client.SetBaseURL(next.API.BaseURL)
		}
		logging.Apply(logging.Settings{
			DebugMode:  next.Logging.DebugMode || verbose,
			Level:      next.Logging.Level,
			Categories: next.Logging.Categories,
			JSONFormat: next.Logging.JSONFormat,
		})
		logging.Boot("config reloaded")
	})
	if err == nil {
		a.watcher = w
	}
	return a, nil
}

func (a *app) close() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
	logging.CloseAll()
}

// requireAuth fails fast with a readable hint instead of a 401 later.
func (a *app) requireAuth() error {
	if !a.sess.Authenticated() {
		return fmt.Errorf("not logged in; run `shopctl login --token <token> --site <id>` or set %s", session.EnvToken)
	}
	return nil
}

// signalContext is the base context for one-shot commands.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runInteractive starts the TUI.
func runInteractive() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	if err := a.requireAuth(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if a.watcher != nil {
		_ = a.watcher.Start(ctx)
	}

	return ui.Run(ctx, ui.ThemeByName(a.cfg.UI.Theme), ui.Services{
		Categories: a.categories,
		Products:   a.products,
		Pages:      a.pages,
		Orders:     a.orders,
		Reviews:    a.reviews,
		Currencies: a.currencies,
		Promos:     a.promos,
		Providers:  a.providers,
		Store:      a.store,
	}, a.cfg.UI.PageLimit)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.shopctl)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "override the admin API base URL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
