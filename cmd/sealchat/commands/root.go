package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sealchat/internal/app"
	"sealchat/internal/domain"
)

var (
	home       string
	passphrase string
	backendURL string
	userID     string
	username   string
	token      string
	verbose    bool

	wire *app.Wire
	sess domain.Session
)

// Execute runs the CLI.
func Execute() error {
	err := newRoot().Execute()
	if wire != nil {
		_ = wire.Close()
	}
	return err
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "sealchat",
		Short:        "End-to-end encrypted two-party chat CLI",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".sealchat")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p); it seals your local key cache")
			}

			cfg, err := app.LoadConfig(home)
			if err != nil {
				return err
			}
			// Flags override the config file.
			if backendURL != "" {
				cfg.BackendURL = backendURL
			}
			if userID != "" {
				cfg.UserID = userID
			}
			if username != "" {
				cfg.Username = username
			}
			if token != "" {
				cfg.AccessToken = token
			}
			if cfg.BackendURL == "" {
				return fmt.Errorf("no backend configured. use --backend or set backend_url in %s", filepath.Join(home, "config.yaml"))
			}

			w, err := app.NewWire(cfg, passphrase, newLogger(verbose))
			if err != nil {
				return err
			}
			wire = w
			sess = domain.Session{UserID: domain.UserID(cfg.UserID), Username: cfg.Username}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.sealchat)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing the local key cache")
	root.PersistentFlags().StringVar(&backendURL, "backend", "", "backend base URL (e.g. http://127.0.0.1:8080)")
	root.PersistentFlags().StringVar(&userID, "user", "", "your participant id")
	root.PersistentFlags().StringVar(&username, "username", "", "your directory identifier (login email)")
	root.PersistentFlags().StringVar(&token, "token", "", "backend access token")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(registerCmd(), openCmd(), sendCmd(), historyCmd(), watchCmd())
	return root
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// requireSession verifies the identity fields a command needs.
func requireSession() error {
	if sess.UserID == "" {
		return fmt.Errorf("--user required (or set user_id in config.yaml)")
	}
	return nil
}
