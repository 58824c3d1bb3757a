package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"feedme/core/feed"
	"feedme/core/store"

	"github.com/spf13/cobra"
)

var (
	entriesStatus string
	entriesLimit  int
)

// entriesCmd lists stored entries.
var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List stored entries, newest first",
	RunE:  runEntries,
}

func init() {
	entriesCmd.Flags().StringVar(&entriesStatus, "status", "", "Only entries with this status (unread, read, pending_delete, pending_starred)")
	entriesCmd.Flags().IntVar(&entriesLimit, "limit", store.DefaultListLimit, "Maximum number of entries")
	RootCmd.AddCommand(entriesCmd)
}

func runEntries(cmd *cobra.Command, args []string) error {
	filter := store.ListFilter{Limit: entriesLimit}
	if entriesStatus != "" {
		status, err := feed.ParseStatus(entriesStatus)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	records, err := rt.store.List(ctx, filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPUBLISHED\tSOURCE\tTITLE")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.LocalID, r.Status, r.PublishedAt.Format(time.RFC3339), r.Source, r.Title)
	}
	return w.Flush()
}
