package memory

import (
	"testing"

	"ceo-diagnostic-be/pkg/wizard"

	"github.com/stretchr/testify/assert"
)

func TestWizardRepositoryRoundTrip(t *testing.T) {
	repo := NewWizardRepository()

	session := wizard.NewSession("abc", []wizard.Category{{ID: "avatar", Name: "Avatar"}})
	repo.Save(session)

	got, found := repo.Get("abc")
	assert.True(t, found)
	assert.Same(t, session, got)

	_, found = repo.Get("missing")
	assert.False(t, found)

	repo.Delete("abc")
	_, found = repo.Get("abc")
	assert.False(t, found)
}
