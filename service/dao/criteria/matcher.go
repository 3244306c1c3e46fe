package criteria

// MatchesTags reports whether a record tagged with recordTags satisfies the
// requested tags. An empty request matches everything; otherwise any overlap
// is enough, mirroring how the remote find call indexes records.
func MatchesTags(recordTags, requested []string) bool {
	if len(requested) == 0 {
		return true
	}
	for _, want := range requested {
		for _, have := range recordTags {
			if want == have {
				return true
			}
		}
	}
	return false
}
