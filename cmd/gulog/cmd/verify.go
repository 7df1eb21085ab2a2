package cmd

import (
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/quantike/gulog/pkg/codec"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Verify the integrity of a stored record",
	Long: `Re-read the record with the given id and check that its payload
still matches its digest.

Exits non-zero when the record is corrupted or cannot be read.

Example:
  gulog verify 01J33Z1QGSRZF5NXYZVS0H2J4D`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, ok := clientFromContext(cmd)
		if !ok {
			return fmt.Errorf("log client not found in context")
		}

		id, err := ulid.ParseStrict(args[0])
		if err != nil {
			return fmt.Errorf("invalid record id %q: %w", args[0], err)
		}

		record, err := client.Read(cmd.Context(), id)
		if err != nil {
			var integrityErr *codec.IntegrityError
			if errors.As(err, &integrityErr) {
				return fmt.Errorf("record %s is corrupted: %w", id, err)
			}
			return fmt.Errorf("failed to read record: %w", err)
		}

		cmd.Printf("Record %s is valid (%d byte payload)\n", record.ID, len(record.Payload))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
