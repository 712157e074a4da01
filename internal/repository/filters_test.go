package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithVisibilityDefaultsToActiveOnly(t *testing.T) {
	clauses := withVisibility([]string{"organization_id=$1"}, false)
	assert.Equal(t, []string{"organization_id=$1", "is_deleted = FALSE"}, clauses)

	// No base clauses: the exclusion still applies.
	clauses = withVisibility(nil, false)
	assert.Equal(t, []string{"is_deleted = FALSE"}, clauses)
}

func TestWithVisibilityHonorsExplicitOptIn(t *testing.T) {
	clauses := withVisibility([]string{"organization_id=$1"}, true)
	assert.Equal(t, []string{"organization_id=$1"}, clauses)

	assert.Empty(t, withVisibility(nil, true))
}

func TestClampPageBounds(t *testing.T) {
	cases := []struct {
		name                  string
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{"defaults", 0, 0, 20, 0},
		{"negative limit", -5, 0, 20, 0},
		{"cap", 500, 0, 100, 0},
		{"negative offset", 10, -3, 10, 0},
		{"passthrough", 50, 40, 50, 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := clampPage(tc.limit, tc.offset)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}
