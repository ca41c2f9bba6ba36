package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSystemInstruction creates the system-role message for the assessment.
func (pb *PromptBuilder) BuildSystemInstruction() string {
	return "You are an AI specializing in Big Five personality assessment. " +
		"Analyze the given response and provide a structured JSON output with " +
		"personality traits (openness, conscientiousness, extraversion, " +
		"agreeableness, neuroticism) on a scale of 0-100."
}

// BuildAssessmentPrompt creates the user-role message embedding the
// candidate's free-text response verbatim.
func (pb *PromptBuilder) BuildAssessmentPrompt(responseText string) string {
	return fmt.Sprintf(
		"Analyze the personality traits for this response and return a JSON object: '%s'",
		responseText,
	)
}
