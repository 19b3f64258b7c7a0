package truncate

// String shortens s to at most max characters (runes, not bytes), so a cut
// never lands inside a multibyte sequence. Truncated text is marked with an
// ellipsis that counts against the budget.
func String(s string, max int) string {
	if max <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
