package memory

import (
	"time"

	"ceo-diagnostic-be/pkg/wizard"

	"github.com/patrickmn/go-cache"
)

// WizardRepository holds the live wizard state for active visitors.
// Abandoned sessions expire after two hours; a finished or expired
// session is only ever recreated by starting over at the gate.
type WizardRepository struct {
	cache *cache.Cache
}

func NewWizardRepository() *WizardRepository {
	c := cache.New(2*time.Hour, 10*time.Minute)
	return &WizardRepository{
		cache: c,
	}
}

func (r *WizardRepository) Save(session *wizard.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *WizardRepository) Get(sessionID string) (*wizard.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*wizard.Session), true
	}
	return nil, false
}

func (r *WizardRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
