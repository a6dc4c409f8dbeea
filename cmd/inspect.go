package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mabhi256/jvmch/internal/config"
	"github.com/mabhi256/jvmch/internal/jar"
	"github.com/mabhi256/jvmch/internal/tui"
)

var inspectCmd = &cobra.Command{
	Use:               "inspect <jar>",
	Short:             "Summarize an archive's contents and entry points",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeJarArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		report, err := jar.Inspect(args[0], nil)
		if err != nil {
			return err
		}

		switch cfg.Inspect.Output {
		case "tui":
			return tui.Run(report)
		default:
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringP("output", "o", "cli", "Output format")

	// When user types: jvmch inspect app.jar -o <TAB>
	inspectCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
