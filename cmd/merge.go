package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mabhi256/jvmch/internal/jar"
	"github.com/mabhi256/jvmch/internal/logging"
)

var mergeCmd = &cobra.Command{
	Use:   "merge-jar-files <target-jar> <source-jar>...",
	Short: "Concatenate the entries of several archives into one",
	Long: `Copies every entry of each source archive, in argument order, into the
target archive. Source manifests are dropped and repeated directory entries
are written once; a file present in two sources is an error.`,
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completeJarArgs(-1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New(cmd.ErrOrStderr(), false)
		defer logger.Sync()

		_, err := jar.NewMerger(logger).Merge(args[0], args[1:])
		return err
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
