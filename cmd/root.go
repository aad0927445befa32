package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/dPort/cmd/demo"
	"github.com/ValentinKolb/dPort/cmd/perf"
	"github.com/ValentinKolb/dPort/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dport",
		Short: "typed, shareable ports for component data flow",
		Long: fmt.Sprintf(`dPort (v%s)

Typed, named ports that components use to exchange values.
Ports can be bound so that several of them share one value,
which is read and written through guards.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dPort",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dPort v%s\n", Version)
		},
	}
)

func init() {
	// read .env files and DPORT_* variables
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(demo.DemoCmd)
	RootCmd.AddCommand(perf.PerfCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupLoggingFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
