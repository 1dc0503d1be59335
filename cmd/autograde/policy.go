package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/autograde/internal/policy"
)

func newPolicyCmd(rf *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect, validate, and convert grading policies",
	}
	cmd.AddCommand(newPolicyShowCmd(rf))
	cmd.AddCommand(newPolicyValidateCmd(rf))
	cmd.AddCommand(newPolicyConvertCmd(rf))
	cmd.AddCommand(newPolicyListCmd())
	return cmd
}

type policyShowFlags struct {
	builtin  bool
	format   string
	noHeader bool
}

func newPolicyShowCmd(rf *rootFlags) *cobra.Command {
	f := &policyShowFlags{}
	cmd := &cobra.Command{
		Use:   "show <file|name>",
		Short: "Print a policy with derived budgets filled in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(rf, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			var p policy.Project
			if f.builtin {
				p, _, err = loadPolicy("", args[0])
			} else {
				p, _, err = loadPolicy(args[0], "")
			}
			if err != nil {
				return exitError(exitPolicy, "failed to load policy: %v", err)
			}
			format := policy.Format(strings.ToLower(f.format))
			if !format.Valid() {
				return exitError(exitPolicy, "unknown format: %s", f.format)
			}
			header := ""
			if !f.noHeader {
				header = policy.Header(timeNow())
			}
			if err := policy.Encode(e.stdout, p, format, header); err != nil {
				return exitError(exitIO, "%v", err)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&f.builtin, "builtin", false, "Treat the argument as an embedded policy name")
	flags.StringVar(&f.format, "format", "yaml", "Output format: yaml, json, or toml")
	flags.BoolVar(&f.noHeader, "no-header", false, "Omit the generated-file header")
	return cmd
}

func newPolicyValidateCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check policy files for errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(rf, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			failed := 0
			for _, path := range args {
				p, _, err := loadPolicy(path, "")
				if err != nil {
					failed++
					fmt.Fprintf(e.stderr, "%s: invalid\n%v\n", path, err)
					continue
				}
				fmt.Fprintf(e.stdout, "%s: ok (%s, %.1f points)\n", path, p.Name, p.MaxPoints)
			}
			if failed > 0 {
				return exitError(exitPolicy, "%d of %d policies invalid", failed, len(args))
			}
			return nil
		},
	}
}

type policyConvertFlags struct {
	noHeader bool
}

func newPolicyConvertCmd(rf *rootFlags) *cobra.Command {
	f := &policyConvertFlags{}
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a policy in the format implied by the output extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(rf, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p, _, err := loadPolicy(args[0], "")
			if err != nil {
				return exitError(exitPolicy, "failed to load policy: %v", err)
			}
			header := ""
			if !f.noHeader {
				header = policy.Header(timeNow())
			}
			out, err := os.Create(args[1])
			if err != nil {
				return exitError(exitIO, "%v", err)
			}
			if err := policy.Encode(out, p, policy.FormatFromPath(args[1]), header); err != nil {
				out.Close()
				return exitError(exitIO, "%v", err)
			}
			if err := out.Close(); err != nil {
				return exitError(exitIO, "%v", err)
			}
			e.log.Info("converted policy", "from", args[0], "to", args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&f.noHeader, "no-header", false, "Omit the generated-file header")
	return cmd
}

func newPolicyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the embedded policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := policy.List()
			if err != nil {
				return exitError(exitIO, "%v", err)
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
