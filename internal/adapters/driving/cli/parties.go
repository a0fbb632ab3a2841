package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mapleline/policyscan/internal/core/domain"
)

var partiesCmd = &cobra.Command{
	Use:   "parties",
	Short: "List tracked political parties",
	RunE:  runParties,
}

var partiesSourcesCmd = &cobra.Command{
	Use:   "sources [party]",
	Short: "List ingested sources for a party",
	Args:  cobra.ExactArgs(1),
	RunE:  runPartySources,
}

func init() {
	partiesCmd.AddCommand(partiesSourcesCmd)
	rootCmd.AddCommand(partiesCmd)
}

func runParties(cmd *cobra.Command, _ []string) error {
	parties, err := store.PartyStore().List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list parties: %w", err)
	}

	for _, party := range parties {
		cmd.Printf("  [%d] %s (%s)\n", party.ID, party.Name, party.Abbreviation)
	}
	return nil
}

func runPartySources(cmd *cobra.Command, args []string) error {
	party, err := resolveParty(cmd, args[0])
	if err != nil {
		return err
	}

	sources, err := store.SourceStore().ListByParty(cmd.Context(), party.ID)
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Printf("No sources ingested for %s.\n", party.Name)
		return nil
	}

	cmd.Printf("Sources for %s:\n\n", party.Name)
	for _, source := range sources {
		date := source.DatePublished
		if date == "" {
			date = "unknown date"
		}
		cmd.Printf("  [%d] %s (%s, %s)\n      %s\n", source.ID, source.Title, source.Kind, date, source.URL)
	}
	return nil
}

// resolveParty accepts an abbreviation ("lpc") or a name substring
// ("liberal") and returns the single matching party.
func resolveParty(cmd *cobra.Command, hint string) (*domain.Party, error) {
	ctx := cmd.Context()

	if party, err := store.PartyStore().GetByAbbreviation(ctx, hint); err == nil {
		return party, nil
	}

	ids, err := retrievalService.ResolveParties(ctx, []string{hint})
	if err != nil {
		return nil, fmt.Errorf("resolve party: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no party matches %q", hint)
	}
	if len(ids) > 1 {
		return nil, fmt.Errorf("%q matches multiple parties, be more specific", hint)
	}
	return store.PartyStore().GetByID(ctx, ids[0])
}
