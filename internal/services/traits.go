package services

import (
	"encoding/json"
	"sort"
	"strings"

	"alfredoptarigan/personality-assessment/internal/models"
)

// ExtractTraits parses the raw AI response into a complete trait record. It
// never fails: anything it cannot parse degrades to the 50.0 default, per
// trait. The second return value lists the traits that fell back to the
// default, sorted, so callers can log the degradation instead of hiding it.
func ExtractTraits(raw string) (models.TraitScores, []string) {
	scores := models.DefaultTraitScores()

	parsed := parseTraitObject(raw)

	var defaulted []string
	for _, name := range models.TraitNames {
		value, ok := parsed[name]
		if !ok {
			defaulted = append(defaulted, name)
			continue
		}

		// Only JSON numbers count; a string like "high" keeps the default
		// for that trait without invalidating the others.
		number, ok := value.(float64)
		if !ok {
			defaulted = append(defaulted, name)
			continue
		}

		scores.Set(name, number)
	}

	sort.Strings(defaulted)
	return scores, defaulted
}

// parseTraitObject slices the first {...last} span out of the text, strips
// markdown fencing, and parses it as a JSON object with lowercased keys.
// Returns nil on any failure.
func parseTraitObject(raw string) map[string]any {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil
	}

	content := raw[start : end+1]
	content = strings.Trim(content, "`")
	content = strings.TrimSpace(content)

	var object map[string]any
	if err := json.Unmarshal([]byte(content), &object); err != nil {
		return nil
	}

	normalized := make(map[string]any, len(object))
	for key, value := range object {
		normalized[strings.ToLower(key)] = value
	}

	return normalized
}
