// cmd/storefront/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/notify"
)

var (
	// Global flags
	verbose    bool
	backendURL string
	timeout    time.Duration

	cfg *config.Config
	log *logrus.Logger
	st  *app
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront client for the QKart REST backend",
	Long: `storefront browses the catalog, manages the cart and places orders
against a QKart-compatible REST backend.

The login is persisted between runs (SESSION_STORE selects file, redis or sql).
Run "storefront serve" to drive the same page state over a local JSON API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if backendURL != "" {
			cfg.Backend.Endpoint = strings.TrimRight(backendURL, "/")
		}
		if verbose {
			cfg.App.Debug = true
			cfg.Logging.Level = "debug"
		}

		log = logger.NewWithOutput(cfg, cmd.ErrOrStderr())

		// The view server collects notifications in its inbox and logs them
		out := cliNotifier(cmd.ErrOrStderr())
		if cmd == serveCmd {
			out = notify.NewLogNotifier(log)
		}
		st, err = newApp(cfg, log, out)
		return err
	},
}

func init() {
	cobra.OnFinalize(closeApp)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "Backend endpoint (default: BACKEND_ENDPOINT)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(incCmd)
	rootCmd.AddCommand(decCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(addressesCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// closeApp runs after every command, including failed ones
func closeApp() {
	if st == nil {
		return
	}
	if err := st.Close(); err != nil {
		log.WithError(err).Warn("failed to close session store")
	}
	st = nil
}

// commandContext bounds a command by --timeout
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}
