package main

import (
	"fmt"
	"strconv"
	"strings"

	"redbreast/internal/querylist"
)

// parseWhereTerms converts repeated --where flags of the form
// "field__op=value" into query terms.
func parseWhereTerms(pairs []string) (querylist.Terms, error) {
	terms := make(querylist.Terms, len(pairs))
	for _, pair := range pairs {
		key, raw, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --where %q (expected field__op=value)", pair)
		}
		terms[key] = parseTermValue(strings.TrimSpace(raw))
	}
	return terms, nil
}

// parseTermValue picks the most specific literal type for a flag value so
// numeric comparisons work without quoting rules.
func parseTermValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
