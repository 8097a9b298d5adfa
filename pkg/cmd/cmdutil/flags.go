package cmdutil

import "github.com/spf13/pflag"

// PersistentFlags defines the flags shared by the sub-commands
func PersistentFlags(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "debug flag")
	flags.String("config", "", "config file, mtcli.yaml is loaded when it exists")
	flags.String("db-driver", "", "database driver of the macd values, mysql or sqlite3")
	flags.String("db-dsn", "", "database dsn of the macd values")
}
