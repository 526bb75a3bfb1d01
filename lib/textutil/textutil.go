package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decomposes characters into base + combining marks and drops the marks,
// the result is intentionally left decomposed so normalizing twice is a no-op.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// NormalizeName turns a display name into the key used for matching names
// across data sources: lowercased, diacritics removed and whitespace collapsed.
//
//	"  José   MOURINHO " -> "jose mourinho"
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	stripped, _, err := transform.String(stripMarks, name)
	if err == nil {
		name = stripped
	}
	return strings.Join(strings.Fields(name), " ")
}

// FilenameFromName is the file-safe form of a player name used for
// per-player output files. ("Dele Alli" -> "Dele_Alli", "N'Golo Kanté" -> "NGolo_Kanté")
func FilenameFromName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "'", "")
	name = strings.ReplaceAll(name, string(rune(0x2019)), "")
	name = strings.ReplaceAll(name, "/", "-")
	return name
}
