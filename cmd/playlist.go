package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ledge/internal/plugins/playlist"
	"github.com/zjrosen/ledge/internal/store"
	"github.com/zjrosen/ledge/internal/system"
)

var (
	playlistOpen bool
	playlistCopy bool
)

var playlistCmd = &cobra.Command{
	Use:   "playlist <channel>",
	Short: "Print the YouTube playlist URL for a channel",
	Long: `Build a YouTube playlist from the 50 most recent YouTube links posted in
a channel and print its URL. The channel may be given by name or id.

Examples:
  ledge playlist music
  ledge playlist music --open
  ledge playlist music --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		var opener system.Opener
		if playlistOpen {
			opener = system.BrowserOpener{}
		}
		var clip system.Clipboard
		if playlistCopy {
			clip = system.SystemClipboard{}
		}
		return runPlaylist(cmd.Context(), db, args[0], cmd.OutOrStdout(), opener, clip)
	},
}

func init() {
	playlistCmd.Flags().BoolVar(&playlistOpen, "open", false, "open the playlist in the browser")
	playlistCmd.Flags().BoolVar(&playlistCopy, "copy", false, "copy the playlist URL to the clipboard")
	rootCmd.AddCommand(playlistCmd)
}

// runPlaylist prints the channel's playlist URL, then opens or copies it when
// opener or clip are set.
func runPlaylist(ctx context.Context, db *store.DB, channel string, out io.Writer, opener system.Opener, clip system.Clipboard) error {
	ch, err := db.Channel(ctx, channel)
	if err != nil {
		return fmt.Errorf("%s: %w", channel, err)
	}
	pl, err := playlist.NewResolver(db).Resolve(ctx, ch.ID)
	if err != nil {
		return fmt.Errorf("#%s: %w", ch.Name, err)
	}

	if _, err := fmt.Fprintln(out, pl.URL); err != nil {
		return err
	}
	if opener != nil {
		if err := opener.Open(pl.URL); err != nil {
			return fmt.Errorf("opening playlist: %w", err)
		}
	}
	if clip != nil {
		if err := clip.Copy(pl.URL); err != nil {
			return fmt.Errorf("copying playlist: %w", err)
		}
	}
	return nil
}
