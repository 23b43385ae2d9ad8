package cmd

import (
	"fmt"
	"os"

	"github.com/simonboy77/osrsbox-enchanced-monsters/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "osrsmonsters",
	Short: "Build the OSRS monster database from cache and wiki dumps",
	Long: `osrsmonsters turns the raw OSRS cache dump and wiki page text into
typed monster records: it resolves versioned infobox fields, normalizes
combat properties, parses drop tables against the item catalog, and
reports what changed since the previous published database.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.osrsmonsters.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".osrsmonsters" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".osrsmonsters")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("data.cache", "data/monsters-cache-data.json")
	viper.SetDefault("data.pages-by-id", "data/monsters-wiki-page-text-processed.json")
	viper.SetDefault("data.pages-by-name", "data/monsters-wiki-page-text.json")
	viper.SetDefault("data.items", "data/items-summary.json")
	viper.SetDefault("data.prior", "docs/monsters-complete.json")
	viper.SetDefault("data.schema", "data/schema-monsters.json")
	viper.SetDefault("export.dir", "docs/monsters-json")
	viper.SetDefault("changes.db", "")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		utils.Log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}

	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
