package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// rankOptions returns the options matching query, best match first. An
// empty query returns options unchanged.
func rankOptions(options []string, query string) []string {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" || len(options) == 0 {
		return options
	}
	targets := make([]string, len(options))
	for i, opt := range options {
		targets[i] = strings.ToLower(opt)
	}
	matches := fuzzy.Find(query, targets)
	ranked := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.Index >= 0 && match.Index < len(options) {
			ranked = append(ranked, options[match.Index])
		}
	}
	return ranked
}
