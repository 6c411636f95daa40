package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/datagen-cli/internal/core/domain"
)

var labelsCmd = &cobra.Command{
	Use:   "labels [domain]",
	Short: "List classification labels for a domain",
	Long: `Lists the classification label set used when generating
classification datasets. Without an argument, all known domains and
their labels are printed. Unknown domains fall back to the default
label set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLabels,
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}

func runLabels(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		printLabels(cmd, args[0])
		return nil
	}

	for _, d := range domain.KnownLabelDomains() {
		printLabels(cmd, d)
		cmd.Println()
	}
	return nil
}

func printLabels(cmd *cobra.Command, labelDomain string) {
	cmd.Printf("[%s]\n", labelDomain)
	for _, label := range domain.ClassificationLabels(labelDomain) {
		cmd.Printf("  %s\n", label)
	}
}
