// Package cmd implements the bluegem CLI commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
	"github.com/donaldgifford/csbluegem-go/pkg/logger"
)

var (
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "bluegem",
		Short: "CLI client for the CSBlueGem API",
		Long: "bluegem is a command-line client for CSBlueGem, the blue gem\n" +
			"sale-history database for Case Hardened CS2 skins. It queries sale\n" +
			"records, pattern tier data, and price estimates, and can watch for\n" +
			"new sales on a schedule.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "watch config file (YAML)")
	rootCmd.PersistentFlags().
		String("base-url", "", "CSBlueGem API base URL (default https://api.csbluegem.com/v2)")
	rootCmd.PersistentFlags().
		String("currency", "USD", "currency for prices")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")

	cobra.CheckErr(viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url")))
	cobra.CheckErr(viper.BindPFlag("currency", rootCmd.PersistentFlags().Lookup("currency")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(patternDataCmd())
	rootCmd.AddCommand(priceCheckCmd())
	rootCmd.AddCommand(itemsCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	viper.SetEnvPrefix("BLUEGEM")
	viper.AutomaticEnv()
}

func newClient() *bluegem.Client {
	opts := []bluegem.Option{}
	if u := viper.GetString("base_url"); u != "" {
		opts = append(opts, bluegem.WithBaseURL(u))
	}
	if verbose {
		opts = append(opts, bluegem.WithLogger(logger.New("debug", "color")))
	}
	return bluegem.New(opts...)
}

func currencyFlag() (bluegem.Currency, error) {
	return bluegem.ParseCurrency(viper.GetString("currency"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
