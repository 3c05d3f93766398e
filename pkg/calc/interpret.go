package calc

// Interpretation is the qualitative band for a total score.
type Interpretation struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Interpret maps a total score to its band. The boundaries are fixed
// business copy: below 50 needs work, 50 through 75 inclusive is
// moderate, above 75 is strong.
func Interpret(totalScore int) Interpretation {
	if totalScore < 50 {
		return Interpretation{
			Level:   "needs-work",
			Title:   "Significant Structural Gaps",
			Message: "Your framework has critical areas that need immediate attention. Focus on the red zones first to build a stronger foundation for sustainable growth.",
		}
	}
	if totalScore <= 75 {
		return Interpretation{
			Level:   "moderate",
			Title:   "Strong Foundation, Inconsistent Scaling",
			Message: "You have solid elements in place but inconsistencies are limiting your growth. Address the yellow zones to unlock your next level of success.",
		}
	}
	return Interpretation{
		Level:   "strong",
		Title:   "High-Level Performance",
		Message: "Your framework is well-optimized. Fine-tune the remaining areas to maximize your scaling opportunity and dominate your market.",
	}
}
