package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ledge/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import channels and messages from a YAML file",
	Long: `Import channels and messages from a YAML file into the message store.

Channels are matched by name and created when missing. Messages are appended.

  channels:
    - name: music
      topic: things worth hearing
      messages:
        - author: ana
          content: new single
          at: 2025-03-01T18:00:00Z
          embeds:
            - url: https://www.youtube.com/watch?v=dQw4w9WgXcQ`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context(), cfg.DBPath, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(ctx context.Context, dbPath, file string, out io.Writer) error {
	f, err := os.Open(file) //nolint:gosec // G304: path is the user's argument
	if err != nil {
		return fmt.Errorf("opening import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	res, err := db.Import(ctx, f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Imported %d messages (%d new channels)\n", res.Messages, res.ChannelsCreated)
	return err
}
