package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitalvas/sena/filter"
	"github.com/vitalvas/sena/rule"
	"github.com/vitalvas/sena/trace"
)

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render <expr>...",
		Short: "Print the canonical form of a rule expression",
		Long: `Compile a rule expression against the built-in predicates and print it in
canonical form. Multiple arguments are joined with spaces.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")

			f, err := rule.Compile(input, Builtins())
			if err != nil {
				return err
			}

			rootOpts.logger().Debug("compiled", "input", input, "rule", trace.Filter(f))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), filter.Render(f))
			return err
		},
	}
}
