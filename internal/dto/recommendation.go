package dto

type ProfileRequest struct {
	TechnicalSkills       bool `json:"technical_skills"`
	ManagementInterest    bool `json:"management_interest"`
	ProgrammingExperience bool `json:"programming_experience"`
	MLKnowledge           bool `json:"ml_knowledge"`
	ProductExperience     bool `json:"product_experience"`
}

type RecommendationResponse struct {
	Outcome        string `json:"outcome"`
	Recommendation string `json:"recommendation"`
}

type ElectivesRequest struct {
	Program string         `json:"program"`
	Profile ProfileRequest `json:"profile"`
}

type ElectivesResponse struct {
	Suggestions string `json:"suggestions"`
}
