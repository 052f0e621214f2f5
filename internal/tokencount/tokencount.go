// Package tokencount approximates token counts for text blobs.
package tokencount

// Estimate returns a rough token count for text using the ~4 chars per token
// approximation. It is deterministic and cheap, and is used only for the
// pre-flight budget decision; real provider counts replace it when available.
func Estimate(text string) int64 {
	if len(text) == 0 {
		return 0
	}
	return int64((len(text) + 3) / 4)
}
