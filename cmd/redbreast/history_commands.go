package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"redbreast/internal/querylist"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded encode runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistorySearchCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all encode runs, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := searchHistory(ctx, cmd)
			if err != nil {
				return err
			}
			return printHistory(cmd, qs)
		},
	}
}

func newHistorySearchCommand(ctx *commandContext) *cobra.Command {
	var whereFlags []string
	var orderFlags []string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Filter and order encode runs",
		Long: `Filter and order encode runs with field__op=value terms.

Fields: id, command, title, input, output, status, error, duration, created_at.
Operators: lt, lte, gt, gte, contains, icontains, in, length; omit the
operator for equality. Prefix an --order field with "-" for descending.

Examples:
  redbreast history search --where command=timelapse --where duration__gt=30
  redbreast history search --where title__icontains=walk --order -created_at`,
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := parseWhereTerms(whereFlags)
			if err != nil {
				return err
			}

			qs, err := searchHistory(ctx, cmd)
			if err != nil {
				return err
			}

			if len(terms) > 0 {
				qs, err = qs.Filter(terms)
				if err != nil {
					return err
				}
			}
			if len(orderFlags) > 0 {
				qs, err = qs.OrderBy(orderFlags...)
				if err != nil {
					return err
				}
			}

			return printHistory(cmd, qs)
		},
	}

	cmd.Flags().StringArrayVar(&whereFlags, "where", nil, "Filter term as field__op=value (repeatable)")
	cmd.Flags().StringArrayVar(&orderFlags, "order", nil, "Order field, \"-\" prefix for descending (repeatable)")

	return cmd
}

func searchHistory(ctx *commandContext, cmd *cobra.Command) (*querylist.QueryList, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := ctx.openHistory(cfg)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	return store.Search(cmd.Context())
}

func printHistory(cmd *cobra.Command, qs *querylist.QueryList) error {
	out := cmd.OutOrStdout()
	if !qs.Exists() {
		fmt.Fprintln(out, "No encode runs recorded.")
		return nil
	}

	headers := []string{"CREATED", "COMMAND", "TITLE", "STATUS", "DURATION", "OUTPUT"}

	rows := make([][]string, 0, qs.Count())
	for _, record := range qs.All() {
		entry, ok := record.(map[string]any)
		if !ok {
			return fmt.Errorf("unexpected history record type %T", record)
		}
		rows = append(rows, []string{
			formatCreatedAt(stringField(entry, "created_at")),
			stringField(entry, "command"),
			stringField(entry, "title"),
			stringField(entry, "status"),
			formatDuration(entry["duration"]),
			stringField(entry, "output"),
		})
	}

	fmt.Fprintln(out, renderTable(headers, rows, "DURATION"))
	return nil
}

func stringField(entry map[string]any, key string) string {
	if s, ok := entry[key].(string); ok {
		return s
	}
	return ""
}

func formatCreatedAt(raw string) string {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return raw
	}
	return ts.Local().Format("2006-01-02 15:04")
}

func formatDuration(value any) string {
	seconds, ok := value.(float64)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.1fs", seconds)
}
