package models

type SubmitRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Response string `json:"response"`
}

type SubmitResponse struct {
	Message string      `json:"message"`
	Traits  TraitScores `json:"personality_traits"`
}

type ProfileResponse struct {
	Email string `json:"email"`
	TraitScores
}

type CandidateSummary struct {
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Traits TraitScores `json:"personality_traits"`
}
