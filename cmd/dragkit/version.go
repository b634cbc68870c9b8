package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func versionCmd(a *app) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(a.out, version)
				return
			}

			printBanner(a.out)
			field(a.out, "Version:", version)
			field(a.out, "Commit:", commit)
			field(a.out, "Built:", date)
			field(a.out, "Go version:", runtime.Version())
			field(a.out, "OS/Arch:", runtime.GOOS+"/"+runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")
	return cmd
}
