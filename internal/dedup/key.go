package dedup

import "strings"

// Key builds a stable identity for a reported condition. The same
// real-world condition must always map to the same key, so the parts are
// joined verbatim with no time-of-call or random component. Keys end up
// in the persisted store file, so they stay human-readable
// ("rain|Manaus|14:00") rather than hashed.
func Key(kind, place, discriminant string) string {
	return strings.Join([]string{kind, place, discriminant}, "|")
}
