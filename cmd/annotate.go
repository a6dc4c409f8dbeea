package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mabhi256/jvmch/internal/config"
	"github.com/mabhi256/jvmch/internal/jar"
	"github.com/mabhi256/jvmch/internal/logging"
)

var annotateCmd = &cobra.Command{
	Use:     "annotate <source-jar> <target-jar>",
	Aliases: []string{"annotate-jar-with-main-class-attribute"},
	Short:   "Record the class declaring main as the archive's Main-Class",
	Long: `Scans every class in the source archive for public static void main(String[])
and writes a copy whose manifest names that class as Main-Class.

An archive that already has a Main-Class is copied unchanged unless
--force-overwrite is given. More than one candidate is an error unless
--use-first is given. Source and target may be the same file.`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeJarArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		opts := jar.AnnotateOptions{
			ForceOverwrite: cfg.Annotate.ForceOverwrite,
			UseFirst:       cfg.Annotate.UseFirst,
			Verbose:        cfg.Annotate.Verbose,
		}

		logger := logging.New(cmd.ErrOrStderr(), opts.Verbose)
		defer logger.Sync()

		_, err = jar.NewAnnotator(logger).Annotate(args[0], args[1], opts)
		return err
	},
}

// completeJarArgs offers .jar files for the first n positional arguments
func completeJarArgs(n int) func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if n >= 0 && len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return completeJarFiles(cmd, args, toComplete)
	}
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().Bool("force-overwrite", false, "Replace an existing Main-Class attribute")
	annotateCmd.Flags().Bool("use-first", false, "Pick the first entry point found when several classes declare main")
	annotateCmd.Flags().BoolP("verbose", "v", false, "Log each scanning decision to stderr")
}
