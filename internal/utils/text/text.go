// Package text provides rune-aware string helpers.
// Article bodies are mostly Japanese, so lengths are counted in runes, never bytes.
package text

// CountRunes counts the number of Unicode characters (runes) in s.
//
// Examples:
//
//	CountRunes("hello")      // 5
//	CountRunes("こんにちは")  // 5
//	CountRunes("Hello👋")    // 6
func CountRunes(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Truncate keeps the first limit runes of s and appends suffix when s is longer.
// It never splits a multi-byte character.
func Truncate(s string, limit int, suffix string) string {
	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + suffix
		}
		n++
	}
	return s
}
