package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

type rootFlags struct {
	configPath string
	logLevel   string
	verbose    bool
	color      string
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	root := &cobra.Command{
		Use:           "autograde",
		Short:         "Grade Java projects against a points policy using their build reports",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pflags := root.PersistentFlags()
	pflags.StringVar(&rf.configPath, "config", "", "Config file (default: ./autograde.yaml)")
	pflags.StringVar(&rf.logLevel, "log-level", "", "Log level: debug, info, warn, or error")
	pflags.BoolVar(&rf.verbose, "verbose", false, "Log processing steps to stderr")
	pflags.StringVar(&rf.color, "color", "auto", "Colour output: auto, on, or off")

	root.AddCommand(newGradeCmd(rf))
	root.AddCommand(newPolicyCmd(rf))
	root.AddCommand(newHistoryCmd(rf))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(os.Stderr, ee.msg)
			}
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
