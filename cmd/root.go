package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/dDict/cmd/kv"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "ddict",
		Short: "durable concurrent dictionary",
		Long: fmt.Sprintf(`dDict (v%s)

A durable key-value dictionary library written in Go: an in-process
concurrent map mirrored to a SQLite table, so every write survives a
process restart.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dDict",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dDict v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
