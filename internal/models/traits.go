package models

// DefaultTraitScore is used for any trait the AI response did not cover.
const DefaultTraitScore = 50.0

// TraitNames lists the Big Five traits in their canonical order.
var TraitNames = []string{
	"openness",
	"conscientiousness",
	"extraversion",
	"agreeableness",
	"neuroticism",
}

// TraitScores holds the Big Five personality scores on a nominal 0-100 scale.
// Values outside that range are stored as-is.
type TraitScores struct {
	Openness          float64 `gorm:"type:float;not null;default:50" json:"openness"`
	Conscientiousness float64 `gorm:"type:float;not null;default:50" json:"conscientiousness"`
	Extraversion      float64 `gorm:"type:float;not null;default:50" json:"extraversion"`
	Agreeableness     float64 `gorm:"type:float;not null;default:50" json:"agreeableness"`
	Neuroticism       float64 `gorm:"type:float;not null;default:50" json:"neuroticism"`
}

func DefaultTraitScores() TraitScores {
	return TraitScores{
		Openness:          DefaultTraitScore,
		Conscientiousness: DefaultTraitScore,
		Extraversion:      DefaultTraitScore,
		Agreeableness:     DefaultTraitScore,
		Neuroticism:       DefaultTraitScore,
	}
}

// Get returns the score for a trait name, false if the name is unknown.
func (t TraitScores) Get(name string) (float64, bool) {
	switch name {
	case "openness":
		return t.Openness, true
	case "conscientiousness":
		return t.Conscientiousness, true
	case "extraversion":
		return t.Extraversion, true
	case "agreeableness":
		return t.Agreeableness, true
	case "neuroticism":
		return t.Neuroticism, true
	}
	return 0, false
}

// Set overwrites the score for a trait name, false if the name is unknown.
func (t *TraitScores) Set(name string, value float64) bool {
	switch name {
	case "openness":
		t.Openness = value
	case "conscientiousness":
		t.Conscientiousness = value
	case "extraversion":
		t.Extraversion = value
	case "agreeableness":
		t.Agreeableness = value
	case "neuroticism":
		t.Neuroticism = value
	default:
		return false
	}
	return true
}

// TraitScoreEvent is pushed to every connected recruiter when a candidate
// has been scored and stored. It is never persisted.
type TraitScoreEvent struct {
	Event string              `json:"event"`
	Data  TraitScoreEventData `json:"data"`
}

type TraitScoreEventData struct {
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Traits TraitScores `json:"personality_traits"`
}

func NewCandidateEvent(name, email string, traits TraitScores) TraitScoreEvent {
	return TraitScoreEvent{
		Event: "new_candidate",
		Data: TraitScoreEventData{
			Name:   name,
			Email:  email,
			Traits: traits,
		},
	}
}
