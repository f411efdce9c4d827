package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/smartsum/internal/classify"
	"github.com/mohammad-safakhou/smartsum/internal/orchestrate"
	"github.com/mohammad-safakhou/smartsum/internal/summarize"
)

func summarizeCMD(cfgPath *string) *cobra.Command {
	var urlMode bool
	var summaryType string
	var copyResult bool
	var useSample bool

	cmd := &cobra.Command{
		Use:   "summarize [content]",
		Short: "Summarize raw text or a web page",
		Long: "Submits raw text (or, with --url, a web-page address) for summarization.\n" +
			"Reads from the argument, or from stdin when no argument is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			granularity, err := summarize.ParseGranularity(summaryType)
			if err != nil {
				return err
			}

			var content string
			switch {
			case useSample:
				content = orchestrate.SampleText
			case len(args) == 1:
				content = args[0]
			default:
				data, err := readAllStdin()
				if err != nil {
					return err
				}
				content = data
			}

			mode := orchestrate.ModeText
			if urlMode {
				mode = orchestrate.ModeURL
			}
			req := orchestrate.Request{Content: content, Mode: mode, Granularity: granularity}

			res, cerr := a.orch.Submit(cmd.Context(), req)
			if cerr != nil {
				printClassified(cerr)
				return fmt.Errorf("summarization failed: %s", cerr.Title)
			}

			fmt.Println(res.SummaryText)
			if mode == orchestrate.ModeText {
				printStats(content, res.SummaryText)
			}
			if copyResult {
				if copyErr := a.orch.CopySummary(); copyErr != nil {
					printClassified(copyErr)
				} else {
					fmt.Println("(copied to clipboard)")
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&urlMode, "url", false, "treat the input as a web-page address")
	cmd.Flags().StringVarP(&summaryType, "type", "t", "standard", "summary length: brief, standard or detailed")
	cmd.Flags().BoolVar(&copyResult, "copy", false, "copy the summary to the clipboard")
	cmd.Flags().BoolVar(&useSample, "sample", false, "summarize the built-in sample text")
	return cmd
}

// printClassified renders the single visible error with its remedial actions.
func printClassified(ce *classify.Error) {
	fmt.Printf("error: %s: %s\n", ce.Title, ce.Message)
	for _, action := range ce.Actions {
		fmt.Printf("  · %s\n", action.Label)
	}
}

func printStats(original, summary string) {
	if len(original) == 0 || len(summary) == 0 {
		return
	}
	reduction := int(100 - float64(len(summary))/float64(len(original))*100)
	fmt.Printf("\noriginal: %d chars · summary: %d chars · reduction: %d%%\n",
		len(original), len(summary), reduction)
}

func readAllStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
