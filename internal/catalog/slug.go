package catalog

import "strings"

// Slugify derives a URL slug from a product or brand name: lowercase, runs
// of non-alphanumeric characters collapsed to a single hyphen, no leading or
// trailing hyphen. Idempotent: Slugify(Slugify(x)) == Slugify(x).
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
