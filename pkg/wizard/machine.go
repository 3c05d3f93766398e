package wizard

import "errors"

var (
	// ErrScoresIncomplete rejects framework -> roi while any category
	// is still unscored.
	ErrScoresIncomplete = errors.New("all framework categories must be scored")

	// ErrInvalidTransition rejects a stage change the machine does not
	// define. The wizard is strictly linear.
	ErrInvalidTransition = errors.New("invalid stage transition")
)

// Start moves gate -> framework once identity has been recorded. The
// transition itself is unguarded; identity validation is the transport
// layer's responsibility.
func (s *Session) Start(user Identity) error {
	if s.Stage != StageGate {
		return ErrInvalidTransition
	}
	s.RecordUser(user)
	s.Stage = StageFramework
	return nil
}

// AdvanceToROI moves framework -> roi, guarded by AllScored. A rejected
// attempt leaves the stage unchanged.
func (s *Session) AdvanceToROI() error {
	if s.Stage != StageFramework {
		return ErrInvalidTransition
	}
	if !s.AllScored() {
		return ErrScoresIncomplete
	}
	s.Stage = StageROI
	return nil
}

// Finish moves roi -> results. Callers run the finalize sequence first;
// the transition itself never fails on backend outcomes.
func (s *Session) Finish() error {
	if s.Stage != StageROI {
		return ErrInvalidTransition
	}
	s.Stage = StageResults
	return nil
}
