package gateway

import "testing"

func TestSoftwareMatches(t *testing.T) {
	cases := []struct {
		name     string
		audience Software
		peer     string
		expected bool
	}{
		{"native matches native", SoftwareNative, "goreads", true},
		{"native matches case insensitively", SoftwareNative, "GoReads", true},
		{"native rejects other software", SoftwareNative, "mastodon", false},
		{"native rejects unknown software", SoftwareNative, "", false},
		{"other rejects native", SoftwareOther, "goreads", false},
		{"other matches other software", SoftwareOther, "bookwyrm", true},
		{"other matches unknown software", SoftwareOther, "", true},
		{"any matches native", SoftwareAny, "goreads", true},
		{"any matches unknown", SoftwareAny, "", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.audience.matches(c.peer); got != c.expected {
				t.Errorf("%q.matches(%q) = %t, expected %t", c.audience, c.peer, got, c.expected)
			}
		})
	}
}
