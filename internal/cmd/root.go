package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cb-innovatekare/hokage/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "hokage",
	Short: "Organizer dashboard for team verification and domain assignment",
	Long: `Hokage is the organizer console of the event. It lists registered teams
by sector, verifies them, reassigns their domains and broadcasts the time
domain selection opens to every participant.

Run "hokage dashboard" for the interactive view; the other commands are
scriptable equivalents.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/hokage/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// .env first so HOKAGE_* variables defined there are visible to viper
	if err := config.LoadDotEnv(config.DotEnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring %s: %v\n", config.DotEnvFile, err)
	}

	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/hokage")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HOKAGE")
	// HOKAGE_API_BASE_URL for api.base_url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing config file is fine; defaults and env still apply
	_ = viper.ReadInConfig()
}
