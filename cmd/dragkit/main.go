// Command dragkit runs the drag-and-drop demo server.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vango-dev/dragkit/internal/config"
	"github.com/vango-dev/dragkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries state shared by the subcommands.
type app struct {
	out        io.Writer
	v          *viper.Viper
	configFile string
}

func (a *app) load() (*config.Config, error) {
	cfg, err := config.FromViper(a.v, a.configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, v: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "dragkit",
		Short: "Server-driven drag and drop",
		Long: `dragkit serves a board of draggable cards whose drag state lives
on the server. Pointer and keyboard events travel over a WebSocket;
the server answers with the style patches they cause.

Configuration is read from dragkit.json, DRAGKIT_* environment
variables and flags, in increasing priority.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Config file (default ./dragkit.json)")

	rootCmd.AddCommand(
		serveCmd(a),
		configCmd(a),
		versionCmd(a),
	)
	return rootCmd
}
