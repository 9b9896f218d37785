package truncate

// ellipsis marks a message that was cut to fit the configured limit.
const ellipsis = "...truncated"

// String truncates s to at most maxLength bytes. If anything was cut,
// the ellipsis marker replaces the removed tail; when maxLength is too
// small to fit the marker the string is just cut. A non-positive
// maxLength disables truncation.
func String(s string, maxLength int) string {
	if maxLength <= 0 || len(s) <= maxLength {
		return s
	}

	if maxLength <= len(ellipsis) {
		// Not enough space for ellipsis, just cut
		return s[:maxLength]
	}

	return s[:maxLength-len(ellipsis)] + ellipsis
}
