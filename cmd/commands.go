package cmd

import (
	"fmt"
	"github.com/spf13/cobra"
	"time"
	"vincit.fi/photo-triage/api"
	"vincit.fi/photo-triage/api/apitype"
	"vincit.fi/photo-triage/common/mainloop"
)

func formatScanTime(timestamp time.Time) string {
	if timestamp.IsZero() {
		return "never"
	}
	return timestamp.Local().Format("2006-01-02 15:04:05")
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [dir]",
		Short: "Show how much of the library is still to be triaged",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			lastScan, err := s.services.Library.LastScanned()
			if err != nil {
				return fmt.Errorf("read scan status: %w", err)
			}
			out := cmd.OutOrStdout()
			return s.call(func() {
				triage := s.triage()
				printf(out, "Items:     %d\n", triage.TotalItemCount())
				printf(out, "Remaining: %d\n", len(triage.FilteredItems()))
				printf(out, "Kept:      %d\n", len(triage.KeptIdentifiers()))
				printf(out, "Pending:   %d\n", len(triage.PendingItems()))
				printf(out, "Deleted:   %d\n", len(triage.DeletedItems()))
				printf(out, "Last scan: %s\n", formatScanTime(lastScan))
			})
		},
	}
}

func newAlbumsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "albums [dir]",
		Short: "List albums, months and years with their item counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			return s.call(func() {
				triage := s.triage()
				printf(out, "Albums\n")
				for _, info := range triage.Collections() {
					printf(out, "  %-30s %-5s %6d\n", info.Collection.Name(), info.Collection.Kind(), info.Count)
				}
				printf(out, "Months\n")
				for _, month := range triage.Months() {
					printf(out, "  %-36s %6d\n", month.Period, month.Count)
				}
				printf(out, "Years\n")
				for _, year := range triage.Years() {
					printf(out, "  %-36s %6d\n", year.Period, year.Count)
				}
			})
		},
	}
}

func pendingItems(triage api.TriageService) []*apitype.Item {
	return triage.PendingItems()
}

func deletedItems(triage api.TriageService) []*apitype.Item {
	return triage.DeletedItems()
}

func newListCmd(use string, short string, items func(api.TriageService) []*apitype.Item) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [dir]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			return s.call(func() {
				for _, item := range items(s.triage()) {
					printf(out, "%s  %s  %s\n", item.Created().Format("2006-01-02"), item.Kind(), item.Path())
				}
			})
		},
	}
}

func newPurgeCmd() *cobra.Command {
	purge := &cobra.Command{
		Use:   "purge [dir]",
		Short: "Delete every item marked for deletion",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			var items []*apitype.Item
			if err := s.call(func() {
				items = s.triage().DeletedItems()
			}); err != nil {
				return err
			}
			if len(items) == 0 {
				printf(out, "Nothing marked for deletion\n")
				return nil
			}

			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				for _, item := range items {
					printf(out, "would delete %s\n", item.Path())
				}
				printf(out, "Run again with --yes to delete %d items\n", len(items))
				return nil
			}

			result := make(chan bool, 1)
			if err := s.call(func() {
				s.triage().ConfirmDelete(items, func(success bool) {
					result <- success
				})
			}); err != nil {
				return err
			}
			var success bool
			select {
			case success = <-result:
			case <-s.loop.Finished():
				return mainloop.ErrStopped
			}
			if !success {
				return fmt.Errorf("could not delete all %d items, run purge again to retry", len(items))
			}
			printf(out, "Deleted %d items\n", len(items))
			return nil
		},
	}
	purge.Flags().BoolP("yes", "y", false, "Delete without listing the items first")
	return purge
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "reset kept|pending [dir]",
		Short:     "Forget every kept or pending decision",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"kept", "pending"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			if target != "kept" && target != "pending" {
				return fmt.Errorf("unknown set '%s', expected kept or pending", target)
			}
			s, err := openSession(cmd, args[1:])
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.call(func() {
				if target == "kept" {
					s.triage().ResetKeptItems()
				} else {
					s.triage().ResetPendingItems()
				}
			}); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Reset %s items\n", target)
			return nil
		},
	}
}
