package wizard

// Stage is one of the four linear phases of the diagnostic.
type Stage string

const (
	StageGate      Stage = "gate"
	StageFramework Stage = "framework"
	StageROI       Stage = "roi"
	StageResults   Stage = "results"
)

// Category is one scored dimension of the framework diagnostic.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Ordinal     int    `json:"ordinal"`
}

// ScoreEntry holds the user's rating for a single category.
// Score 0 means "not yet scored"; 1-10 is a rating.
type ScoreEntry struct {
	CategoryID  string `json:"category_id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Score       int    `json:"score"`
}

// Identity is captured once at the access gate and never edited.
type Identity struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ROIInputs are the raw field values of the simple calculator.
// Values are kept as entered; empty string means unset. Numeric
// coercion is deferred to the calculation engine.
type ROIInputs struct {
	OfferPrice        string `json:"offer_price"`
	ClientsPerMonth   string `json:"clients_per_month"`
	CloseRate         string `json:"close_rate"`
	RevenueGoal       string `json:"revenue_goal"`
	MonthsToGoal      string `json:"months_to_goal"`
	ProgramInvestment string `json:"program_investment"`
}

// LaunchInputs are the raw field values of the multi-launch calculator.
type LaunchInputs struct {
	RevenueGoal2026    string `json:"revenue_goal_2026"`
	FounderClients     string `json:"founder_clients"`
	FounderPrice       string `json:"founder_price"`
	UnstoppableClients string `json:"unstoppable_clients"`
	UnstoppablePrice   string `json:"unstoppable_price"`
	NumLaunches        string `json:"num_launches"`
}

// Session is the single source of truth for one visitor's wizard run.
// All mutation goes through the methods below; consumers hold a
// reference and never write fields directly.
type Session struct {
	ID         string       `json:"id"`
	Stage      Stage        `json:"stage"`
	User       Identity     `json:"user"`
	Scores     []ScoreEntry `json:"scores"`
	ROI        ROIInputs    `json:"roi_inputs"`
	Launch     LaunchInputs `json:"launch_inputs"`
	Submitting bool         `json:"submitting"`
}

// NewSession seeds one score entry per catalog category, in catalog
// order. The entry set stays exactly the catalog's id set for the
// session's whole lifetime.
func NewSession(id string, catalog []Category) *Session {
	scores := make([]ScoreEntry, 0, len(catalog))
	for _, cat := range catalog {
		scores = append(scores, ScoreEntry{
			CategoryID: cat.ID,
			Category:   cat.Name,
		})
	}
	return &Session{
		ID:     id,
		Stage:  StageGate,
		Scores: scores,
	}
}

// RecordUser sets the identity captured at the access gate. Field
// validation happens at the transport layer before this is called.
func (s *Session) RecordUser(user Identity) {
	s.User = user
}

// ScoreUpdate is a partial update for one score entry. Nil fields are
// left untouched.
type ScoreUpdate struct {
	Description *string
	Score       *int
}

// UpdateScoreEntry applies a partial update to the entry with the given
// category id. Returns false when the id is not in the catalog; the
// session is left unchanged in that case.
func (s *Session) UpdateScoreEntry(categoryID string, upd ScoreUpdate) bool {
	for i := range s.Scores {
		if s.Scores[i].CategoryID != categoryID {
			continue
		}
		if upd.Description != nil {
			s.Scores[i].Description = *upd.Description
		}
		if upd.Score != nil {
			s.Scores[i].Score = *upd.Score
		}
		return true
	}
	return false
}

// UpdateROIInput replaces one raw field of the simple calculator.
// Any string is accepted, including non-numeric garbage. Returns false
// for an unknown field name.
func (s *Session) UpdateROIInput(field, value string) bool {
	switch field {
	case "offer_price":
		s.ROI.OfferPrice = value
	case "clients_per_month":
		s.ROI.ClientsPerMonth = value
	case "close_rate":
		s.ROI.CloseRate = value
	case "revenue_goal":
		s.ROI.RevenueGoal = value
	case "months_to_goal":
		s.ROI.MonthsToGoal = value
	case "program_investment":
		s.ROI.ProgramInvestment = value
	default:
		return false
	}
	return true
}

// UpdateLaunchInput replaces one raw field of the multi-launch
// calculator. Returns false for an unknown field name.
func (s *Session) UpdateLaunchInput(field, value string) bool {
	switch field {
	case "revenue_goal_2026":
		s.Launch.RevenueGoal2026 = value
	case "founder_clients":
		s.Launch.FounderClients = value
	case "founder_price":
		s.Launch.FounderPrice = value
	case "unstoppable_clients":
		s.Launch.UnstoppableClients = value
	case "unstoppable_price":
		s.Launch.UnstoppablePrice = value
	case "num_launches":
		s.Launch.NumLaunches = value
	default:
		return false
	}
	return true
}

// AllScored reports whether every category carries a rating. A single
// zero entry makes it false regardless of the others.
func (s *Session) AllScored() bool {
	for _, entry := range s.Scores {
		if entry.Score <= 0 {
			return false
		}
	}
	return len(s.Scores) > 0
}

// MaxScore is the denominator for score interpretation (10 per category).
func (s *Session) MaxScore() int {
	return len(s.Scores) * 10
}

func (s *Session) BeginSubmit() { s.Submitting = true }
func (s *Session) EndSubmit()   { s.Submitting = false }
