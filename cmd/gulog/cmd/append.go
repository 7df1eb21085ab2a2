package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// appendCmd represents the append command
var appendCmd = &cobra.Command{
	Use:   "append [data]",
	Short: "Append a payload to the log",
	Long: `Append a payload to the log and print the id of the new record.

The payload is taken from the argument, from --file, or from stdin.

Examples:
  gulog append "Hello, MinIO!"
  gulog append --file=payload.bin
  cat payload.bin | gulog append`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, ok := clientFromContext(cmd)
		if !ok {
			return fmt.Errorf("log client not found in context")
		}

		payload, err := readPayload(cmd, args)
		if err != nil {
			return err
		}

		id, err := client.Append(cmd.Context(), payload)
		if err != nil {
			return fmt.Errorf("failed to append record: %w", err)
		}

		cmd.Printf("%s\n", id)
		return nil
	},
}

// readPayload resolves the payload from argument, file, or stdin
func readPayload(cmd *cobra.Command, args []string) ([]byte, error) {
	file, _ := cmd.Flags().GetString("file")

	if len(args) == 1 && file != "" {
		return nil, fmt.Errorf("pass a payload argument or --file, not both")
	}
	if len(args) == 1 {
		return []byte(args[0]), nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read payload from stdin: %w", err)
	}
	return data, nil
}

func init() {
	rootCmd.AddCommand(appendCmd)
	appendCmd.Flags().StringP("file", "f", "", "Read the payload from a file")
}
