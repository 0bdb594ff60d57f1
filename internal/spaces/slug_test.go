package spaces_test

import (
	"testing"

	"github.com/ezzcrafts/testimania/internal/spaces"
	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"My Cool Space", "my-cool-space"},
		{"Launch Day", "launch-day"},
		{"already-lower", "already-lower"},
		{"single", "single"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, spaces.Slug(tt.name))
	}
}

func TestNameFromSlug(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"my-cool-space", "my cool space"},
		{"Launch-Day", "launch day"},
		{"single", "single"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, spaces.NameFromSlug(tt.slug))
	}
}

func TestSlugRoundTrip(t *testing.T) {
	// A normalized stored name survives the slug round trip exactly.
	for _, name := range []string{"my cool space", "launch day", "x"} {
		stored := spaces.NormalizeName(name)
		assert.Equal(t, stored, spaces.NameFromSlug(spaces.Slug(stored)))
	}
}
