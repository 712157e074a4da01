package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

func TestIsPlatformOrg(t *testing.T) {
	flagged := &domain.Organization{ID: "org-flag", IsPlatform: true}
	pinned := &domain.Organization{ID: "org-pin"}
	customer := &domain.Organization{ID: "org-customer"}

	withPin := &Extractor{platformOrgID: "org-pin"}
	assert.True(t, withPin.isPlatformOrg(flagged))
	assert.True(t, withPin.isPlatformOrg(pinned))
	assert.False(t, withPin.isPlatformOrg(customer))

	// No configured id: only the flag counts.
	withoutPin := &Extractor{}
	assert.True(t, withoutPin.isPlatformOrg(flagged))
	assert.False(t, withoutPin.isPlatformOrg(pinned))
	assert.False(t, withoutPin.isPlatformOrg(customer))
}
