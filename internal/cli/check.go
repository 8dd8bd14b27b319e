package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitalvas/sena/filter"
	"github.com/vitalvas/sena/rule"
	"github.com/vitalvas/sena/trace"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	Configs     []string
	EnvPrefix   string
	Strict      bool
	Concurrency int
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check <tuple>...",
		Short: "Evaluate a rule set against integer tuples",
		Long: `Load rules from configuration files and the environment, then evaluate them
against each tuple. A tuple is a comma separated list of integers, e.g. 29,1.

Rules from later files replace rules of the same name. With --env PREFIX,
variables named PREFIX_RULE_<NAME> add or replace rules.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, rootOpts, opts, args)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Configs, "config", "c", nil, "rule files (yaml or json)")
	cmd.Flags().StringVar(&opts.EnvPrefix, "env", "", "environment variable prefix for rule overrides")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject unknown keys in rule files")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "maximum tuples evaluated at once (0 = unlimited)")

	return cmd
}

func runCheck(cmd *cobra.Command, rootOpts *RootOptions, opts *CheckOptions, args []string) error {
	logger := rootOpts.logger()

	inputs := make([]filter.Args, len(args))
	for i, arg := range args {
		tuple, err := parseTuple(arg)
		if err != nil {
			return err
		}
		inputs[i] = tuple
	}

	loadOpts := []rule.Option{rule.WithFiles(opts.Configs...)}
	if opts.EnvPrefix != "" {
		loadOpts = append(loadOpts, rule.WithEnv(opts.EnvPrefix))
	}
	if opts.Strict {
		loadOpts = append(loadOpts, rule.WithStrict())
	}

	cfg, err := rule.LoadConfig(loadOpts...)
	if err != nil {
		return err
	}
	if len(cfg.Rules) == 0 {
		return errors.New("no rules loaded")
	}

	set, err := rule.NewSet(cfg, Builtins(), rule.WithConcurrency(opts.Concurrency))
	if err != nil {
		return err
	}

	logger.Info("rules loaded", "count", set.Len())
	for _, name := range set.Names() {
		f, _ := set.Get(name)
		logger.Debug("rule", "name", name, "expr", trace.Filter(f))
	}

	results, err := set.Lift(trace.Leaves[filter.Args](logger)).MatchAll(cmd.Context(), inputs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, matched := range results {
		line := "-"
		if len(matched) > 0 {
			line = strings.Join(matched, " ")
		}
		if _, err := fmt.Fprintf(out, "%s: %s\n", args[i], line); err != nil {
			return err
		}
	}
	return nil
}

func parseTuple(s string) (filter.Args, error) {
	fields := strings.Split(s, ",")
	tuple := make(filter.Args, 0, len(fields))
	for _, field := range fields {
		x, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tuple %q: %w", s, err)
		}
		tuple = append(tuple, x)
	}
	return tuple, nil
}
