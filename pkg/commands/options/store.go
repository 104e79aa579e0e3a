package options

import (
	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/config"
)

// StoreOptions select the configuration file and database.
type StoreOptions struct {
	ConfigFile string
	DBPath     string
	Driver     string
}

func AddStoreArgs(cmd *cobra.Command, o *StoreOptions) {
	cmd.PersistentFlags().StringVar(&o.ConfigFile, "config", "",
		"Configuration file (default ~/.config/teal/config.yaml).")
	cmd.PersistentFlags().StringVar(&o.DBPath, "db", "",
		"Task database path, or :memory:.")
	cmd.PersistentFlags().StringVar(&o.Driver, "driver", "",
		"SQLite driver: sqlite3 (cgo) or sqlite (pure Go).")
}

// Config resolves the effective configuration with these flags applied last.
func (o *StoreOptions) Config() (*config.Config, error) {
	return config.Load(config.Overrides{
		ConfigFile: o.ConfigFile,
		DBPath:     o.DBPath,
		Driver:     o.Driver,
	})
}
