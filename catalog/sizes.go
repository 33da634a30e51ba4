package catalog

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// sizeRank is the fixed order for letter sizes.
var sizeRank = map[string]int{
	"XS":  0,
	"S":   1,
	"M":   2,
	"L":   3,
	"XL":  4,
	"XXL": 5,
	"TU":  6,
}

// one-size spellings, compared after accent folding and upper-casing
var oneSizeAliases = map[string]bool{
	"TALLA UNICA": true,
	"TALLE UNICO": true,
	"UNICO":       true,
	"UNICA":       true,
	"U":           true,
	"TU":          true,
	"ONE SIZE":    true,
}

// foldAccents strips combining marks: "Única" -> "Unica".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeSize canonicalises a raw size value. Letter sizes are upper-cased,
// every spelling of "one size" becomes "TU", anything else is only trimmed.
func NormalizeSize(raw string) string {
	v := strings.Join(strings.Fields(raw), " ")
	if v == "" {
		return ""
	}
	upper := strings.ToUpper(foldAccents(v))
	if oneSizeAliases[upper] {
		return "TU"
	}
	if _, ok := sizeRank[upper]; ok {
		return upper
	}
	return v
}

// SplitSizes splits a comma separated size metafield into normalised values.
func SplitSizes(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := NormalizeSize(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func numericSize(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	return f, err == nil
}

// sizeClass orders the three buckets: numbers, ranked letters, everything else.
func sizeClass(v string) int {
	if _, ok := numericSize(v); ok {
		return 0
	}
	if _, ok := sizeRank[v]; ok {
		return 1
	}
	return 2
}

// SortSizes sorts size values in place: numeric values ascending, then the
// letter rank table, then unrecognised values by Spanish collation.
func SortSizes(values []string) {
	col := collate.New(language.Spanish, collate.Loose, collate.Numeric)
	sort.SliceStable(values, func(i, j int) bool {
		a, b := values[i], values[j]
		ca, cb := sizeClass(a), sizeClass(b)
		if ca != cb {
			return ca < cb
		}
		switch ca {
		case 0:
			fa, _ := numericSize(a)
			fb, _ := numericSize(b)
			return fa < fb
		case 1:
			return sizeRank[a] < sizeRank[b]
		default:
			return col.CompareString(a, b) < 0
		}
	})
}

// sortCollated sorts strings with Spanish collation.
func sortCollated(values []string) {
	col := collate.New(language.Spanish, collate.Loose, collate.Numeric)
	sort.SliceStable(values, func(i, j int) bool {
		return col.CompareString(values[i], values[j]) < 0
	})
}
