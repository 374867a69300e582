package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denobind/denobind"
)

var opts denobind.Options

var rootCmd = &cobra.Command{
	Use:           "denobind",
	Short:         "Build a native module and generate Deno bindings for it",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if opts.Verbose {
			opts.Log = &denobind.Logger{
				Writer:   os.Stderr,
				Prefix:   "denobind",
				MinLevel: denobind.INFO,
			}
		}
		return denobind.Run(opts)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&opts.Release, "release", "r", false, "build in release mode")
	rootCmd.Flags().StringVarP(&opts.Out, "out", "o", "", "binding output path (default: the module's conventional location)")
	rootCmd.Flags().BoolVarP(&opts.LazyInit, "lazy-init", "l", false, "defer foreign symbol resolution to first call")
	rootCmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print build diagnostics and the artifact summary")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
