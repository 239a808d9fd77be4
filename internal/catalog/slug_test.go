package catalog

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Air Jordan 1":            "air-jordan-1",
		"Nike Dunk Low (Panda)":   "nike-dunk-low-panda",
		"  Yeezy   Boost 350 V2 ": "yeezy-boost-350-v2",
		"ADIDAS---SAMBA":          "adidas-samba",
		"New Balance 990v6!":      "new-balance-990v6",
	}

	for in, want := range cases {
		got := Slugify(in)
		assert.Equal(t, want, got)
		assert.Regexp(t, slugPattern, got)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Air Max 97", "already-a-slug", "Wild!!!Name###Here"}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once))
	}
}

func TestSlugifyNoEdgeHyphens(t *testing.T) {
	assert.Equal(t, "air-force-1", Slugify("--Air Force 1--"))
	assert.Equal(t, "", Slugify("!!!"))
}
