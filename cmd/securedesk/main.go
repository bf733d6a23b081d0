package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tnguyen21/securedesk/internal/app"
	"github.com/tnguyen21/securedesk/internal/auth"
	"github.com/tnguyen21/securedesk/internal/config"
	"github.com/tnguyen21/securedesk/internal/datastore"
	"github.com/tnguyen21/securedesk/internal/employee"
	"github.com/tnguyen21/securedesk/internal/logging"
)

var (
	configPath string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "securedesk",
	Short: "Security agency console",
	Long: `securedesk is the operator console of a security agency: staff,
customers, contracts and reports behind a sign-in gate that first checks
the agency database is reachable.

Run without arguments to start the console in this terminal, or use
"securedesk serve" to offer it over SSH.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runConsole,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "path to config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(passwdCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runConsole runs the shell in the current terminal.
func runConsole(cmd *cobra.Command, args []string) error {
	deps, closeStore, err := buildDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	logger.Info("console started", zap.String("store", cfg.Store.Path), zap.String("driver", cfg.Database.Driver))
	p := tea.NewProgram(app.New(deps), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	logger.Info("console stopped")
	return nil
}

// buildDeps opens the store and prepares the shell's collaborators. The
// returned func closes the store.
func buildDeps(ctx context.Context) (app.Deps, func() error, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := employee.OpenStore(ctx, cfg.Store.Path)
	if err != nil {
		return app.Deps{}, nil, fmt.Errorf("opening store: %w", err)
	}

	var prober auth.Prober
	if !cfg.Database.SkipProbe {
		p, err := datastore.NewProber(cfg.Database)
		if err != nil {
			store.Close()
			return app.Deps{}, nil, fmt.Errorf("configuring database probe: %w", err)
		}
		prober = p
	}

	return app.Deps{
		Validator:    auth.StoreValidator{Accounts: store},
		Prober:       prober,
		Staff:        store,
		Logger:       logger,
		Layout:       cfg.Layout,
		ProbeTimeout: cfg.Database.ProbeTimeout,
	}, store.Close, nil
}
