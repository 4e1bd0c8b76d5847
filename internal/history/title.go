package history

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// noiseTokens are resolution and codec tags that recorder software appends
// to file names. They carry nothing a human wants in a title.
var noiseTokens = map[string]struct{}{
	"480p":  {},
	"720p":  {},
	"1080p": {},
	"2160p": {},
	"4k":    {},
	"h264":  {},
	"h265":  {},
	"x264":  {},
	"x265":  {},
	"hevc":  {},
	"av1":   {},
}

// deriveTitle turns an input file name into a readable entry title: the
// extension goes, separators become spaces, encode noise tokens are dropped,
// and the remainder is title-cased.
func deriveTitle(sourcePath string) string {
	base := filepath.Base(strings.TrimSpace(sourcePath))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	words := strings.FieldsFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	kept := words[:0]
	for _, word := range words {
		if _, noise := noiseTokens[strings.ToLower(word)]; noise {
			continue
		}
		kept = append(kept, word)
	}
	if len(kept) == 0 {
		return "Unknown Input"
	}

	return titleCaser.String(strings.Join(kept, " "))
}
