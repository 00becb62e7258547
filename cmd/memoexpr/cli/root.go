// Package cli implements the memoexpr command: it runs the built-in
// scenarios naively and through the optimizer and prints the comparison.
package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at link time; "go install" builds fall back to build info.
var Version string

var rootCmd = &cobra.Command{
	Use:   "memoexpr",
	Short: "Evaluate expressions with one call per distinct value-set.",
	Long: `memoexpr evaluates expression trees that call an expensive function many
times and compares naive evaluation against memoized evaluation.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("memoexpr ")
			if Version != "" {
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("%s", info.Main.Version)
			} else {
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetFlag reads a boolean flag, exiting if it was not declared.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// GetInt reads an integer flag, exiting if it was not declared.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// GetString reads a string flag, exiting if it was not declared.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

func newLogger(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func init() {
	rootCmd.Flags().Bool("version", false, "print the version and exit")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every pass at debug level")
}
