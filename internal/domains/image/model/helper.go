package model

import "strings"

// NormalizeTags flattens the tag form values into clean tags.
// Each value may itself be a comma-joined list; parts are trimmed,
// empties dropped, left-to-right order kept. Running the result
// through again changes nothing. The result is never nil.
func NormalizeTags(values []string) []string {
	tags := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if tag := strings.TrimSpace(part); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// ParseBoolFlag interprets a background-flag form value.
// Exactly "true" means true; anything else, including absence, is
// false.
func ParseBoolFlag(value string) bool {
	return value == "true"
}
