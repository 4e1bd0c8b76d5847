package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"redbreast/internal/querylist"
)

var foldCaser = cases.Fold()

// searchRegistry extends the default operations with a case-insensitive
// contains for title and path matching from the CLI.
var searchRegistry = func() *querylist.Registry {
	reg := querylist.DefaultRegistry().Clone()
	reg.RegisterOperation("icontains", func(left, right any) (bool, error) {
		s, ok := left.(string)
		if !ok {
			return false, fmt.Errorf("icontains: expected string field, got %T", left)
		}
		sub, ok := right.(string)
		if !ok {
			return false, fmt.Errorf("icontains: expected string value, got %T", right)
		}
		return strings.Contains(foldCaser.String(s), foldCaser.String(sub)), nil
	})
	return reg
}()

// Search loads every entry into a querylist for chained filtering and
// ordering. Entries become mapping-style records; created_at is an RFC3339
// string, so lexicographic ordering matches chronological ordering.
func (s *Store) Search(ctx context.Context) (*querylist.QueryList, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]any, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entry.asRecord())
	}
	return querylist.New(records, querylist.WithRegistry(searchRegistry)), nil
}

func (e Entry) asRecord() map[string]any {
	return map[string]any{
		"id":         e.ID,
		"command":    e.Command,
		"title":      e.Title,
		"input":      e.InputPath,
		"output":     e.OutputPath,
		"status":     e.Status,
		"error":      e.ErrorMessage,
		"duration":   e.DurationSeconds,
		"created_at": e.CreatedAt.Format(time.RFC3339Nano),
	}
}
