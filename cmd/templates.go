package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bizdocs/internal/logger"
	"bizdocs/internal/registry"
	"bizdocs/pkg/models"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the registered document templates",
	Long: `List the templates of every document family in registry order.

Template IDs are stored as user preferences and never change.`,
	Example: `  bizdocs templates
  bizdocs templates --kind quote
  bizdocs templates --json`,
	Args: cobra.NoArgs,
	RunE: runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)

	templatesCmd.Flags().StringP("kind", "k", "", "Only list one family (invoice, quote, delivery-note)")
	templatesCmd.Flags().Bool("json", false, "Output as JSON format")
}

func runTemplates(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("templates")

	kindFlag, _ := cmd.Flags().GetString("kind")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	entries := registry.All()
	if kindFlag != "" {
		kind, err := models.ParseKind(kindFlag)
		if err != nil {
			return err
		}
		entries = registry.ByKind(kind)
	}

	log.Debug().Int("count", len(entries)).Msg("Listing templates")

	if jsonOutput {
		return writeJSON(entries, "", log)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFAMILY\tNAME\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Kind.Title(), e.Name, e.Description)
	}
	return w.Flush()
}
