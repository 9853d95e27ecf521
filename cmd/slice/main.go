// slice is a terminal pizza storefront: browse the menu, fill a cart and
// place or look up orders against the remote pizza API.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"slice/cmd/slice/app"
	"slice/internal/api"
	"slice/internal/config"
	"slice/internal/logging"
)

var (
	// Global flags
	cfgPath string
	apiURL  string
	geoURL  string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd launches the interactive storefront when called bare.
var rootCmd = &cobra.Command{
	Use:   "slice",
	Short: "slice - a pizza storefront for your terminal",
	Long: `slice is a terminal storefront for the remote pizza API.

Run it bare for the interactive experience: tell us your name, browse
the menu, fill your cart and place an order. Subcommands offer quick
non-interactive lookups.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}
		if geoURL != "" {
			cfg.Geo.BaseURL = geoURL
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		logger, err = logging.Init(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.Get(logger, logging.CategoryBoot).Infow("starting",
			"version", cfg.Version, "api", cfg.API.BaseURL)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cfg, logger)
	},
}

// menuCmd prints the current menu without entering the TUI.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the current menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := api.NewClient(cfg.API.BaseURL, logging.Get(logger, logging.CategoryAPI))
		items, err := client.Menu(cmd.Context())
		if err != nil {
			return serviceMessage(err)
		}

		for _, item := range items {
			if item.SoldOut {
				fmt.Printf("%-28s sold out\n", item.Name)
				continue
			}
			fmt.Printf("%-28s €%6.2f  %s\n", item.Name, item.UnitPrice, strings.Join(item.Ingredients, ", "))
		}
		return nil
	},
}

// orderCmd looks up a single order by id.
var orderCmd = &cobra.Command{
	Use:   "order <id>",
	Short: "Look up an order by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := api.NewClient(cfg.API.BaseURL, logging.Get(logger, logging.CategoryAPI))
		order, err := client.Order(cmd.Context(), args[0])
		if err != nil {
			return serviceMessage(err)
		}

		fmt.Printf("Order #%s — %s\n", order.ID, order.Status)
		if order.Priority {
			fmt.Println("PRIORITY")
		}
		if !order.EstimatedDelivery.IsZero() {
			fmt.Printf("Estimated delivery: %s\n", order.EstimatedDelivery.Format("15:04"))
		}
		for _, item := range order.Cart {
			fmt.Printf("  %d× %-24s €%.2f\n", item.Quantity, item.Name, item.TotalPrice)
		}
		fmt.Printf("To pay on delivery: €%.2f\n", order.TotalPrice())
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the slice version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", cfg.Name, cfg.Version)
	},
}

// serviceMessage unwraps a client failure to its user-facing message.
func serviceMessage(err error) error {
	var svcErr *api.ServiceError
	if errors.As(err, &svcErr) {
		return errors.New(svcErr.Message())
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "slice.yaml", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Override the pizza API base URL")
	rootCmd.PersistentFlags().StringVar(&geoURL, "geo-url", "", "Override the reverse-geocoding URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
