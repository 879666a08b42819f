package engine

import "slices"

// collectLabels appends each non-empty tag that the card does not already
// carry. Labels are never removed; the set only grows.
func collectLabels(labels []string, tags ...string) ([]string, bool) {
	changed := false
	for _, tag := range tags {
		if tag != "" && !slices.Contains(labels, tag) {
			labels = append(labels, tag)
			changed = true
		}
	}
	return labels, changed
}

// valueChanged reports whether a freshly fetched value warrants a push:
// it must be non-empty and differ from the stored value.
func valueChanged(stored, fresh string) bool {
	return fresh != "" && fresh != stored
}
