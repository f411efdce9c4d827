package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func historyCMD(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage past summarizations",
	}
	cmd.AddCommand(
		historyListCMD(cfgPath),
		historyShowCMD(cfgPath),
		historyDeleteCMD(cfgPath),
		historyClearCMD(cfgPath),
		historyCopyCMD(cfgPath),
	)
	return cmd
}

func historyListCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List past summarizations, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			entries := a.hist.Entries()
			if len(entries) == 0 {
				fmt.Println("history is empty")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s  %s  %-4s %-8s  %s\n",
					e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"),
					e.InputMode, e.Granularity, preview(e.OriginalInput, 60))
			}
			return nil
		},
	}
}

func historyShowCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Restore a past summarization for display",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			entry, err := a.orch.Restore(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("input (%s, %s):\n%s\n\nsummary:\n%s\n",
				entry.InputMode, entry.Granularity, preview(entry.OriginalInput, 200), entry.SummaryText)
			return nil
		},
	}
}

func historyDeleteCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			if err := a.hist.Delete(args[0]); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
}

func historyClearCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			if err := a.hist.Clear(); err != nil {
				return err
			}
			fmt.Println("history cleared")
			return nil
		},
	}
}

func historyCopyCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a past summary to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			if _, err := a.orch.Restore(args[0]); err != nil {
				return err
			}
			if cerr := a.orch.CopySummary(); cerr != nil {
				printClassified(cerr)
				return fmt.Errorf("copy failed")
			}
			fmt.Println("copied to clipboard")
			return nil
		},
	}
}

func preview(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
