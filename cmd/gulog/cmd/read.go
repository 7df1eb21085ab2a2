package cmd

import (
	"fmt"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Read a record from the log",
	Long: `Read the record with the given id and print its payload.

The record's integrity is verified before anything is printed; a corrupted
or truncated record is an error, never partial output.

Examples:
  gulog read 01J33Z1QGSRZF5NXYZVS0H2J4D
  gulog read 01J33Z1QGSRZF5NXYZVS0H2J4D --output=payload.bin`,
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
			return fmt.Errorf("failed to read record: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		if output != "" {
			if err := os.WriteFile(output, record.Payload, 0644); err != nil {
				return fmt.Errorf("failed to write payload: %w", err)
			}
			cmd.Printf("Wrote %d bytes to %s\n", len(record.Payload), output)
			return nil
		}

		_, err = cmd.OutOrStdout().Write(record.Payload)
		return err
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().StringP("output", "o", "", "Write the payload to a file instead of stdout")
}
