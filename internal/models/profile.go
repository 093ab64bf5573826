package models

// UserProfile holds the five intake answers a recommendation session
// collects. It lives only for the duration of the session.
type UserProfile struct {
	TechnicalSkills       bool `json:"technical_skills"`
	ManagementInterest    bool `json:"management_interest"`
	ProgrammingExperience bool `json:"programming_experience"`
	MLKnowledge           bool `json:"ml_knowledge"`
	ProductExperience     bool `json:"product_experience"`
}

// Outcome is the categorical result of scoring a profile.
type Outcome string

const (
	OutcomeAI        Outcome = "ai"
	OutcomeAIProduct Outcome = "ai_product"
	// OutcomeTie means neither program scored strictly higher. It is a
	// valid result, not an error: the tie text gives a decision checklist
	// instead of forcing a choice.
	OutcomeTie Outcome = "tie"
)
