// Package viewmode decides whether a schedule opens editable or read-only
// under the current calendar viewing mode.
package viewmode

import (
	"fmt"
	"strconv"
)

// ViewMode selects whose schedules the calendar shows.
type ViewMode string

const (
	// Individual shows only the caller's own schedules.
	Individual ViewMode = "individual"
	// AllMembers aggregates every member's schedules.
	AllMembers ViewMode = "all"
)

// Normalize folds the two request shapes seen in the wild into a single
// ViewMode: the newer mode=individual|all parameter and the legacy
// showAll=true|false boolean. The explicit mode wins when both are present.
// Empty input defaults to Individual.
func Normalize(modeParam string, legacyShowAll string) (ViewMode, error) {
	switch modeParam {
	case string(Individual):
		return Individual, nil
	case string(AllMembers):
		return AllMembers, nil
	case "":
	default:
		return "", fmt.Errorf("unknown view mode: %q", modeParam)
	}

	if legacyShowAll != "" {
		showAll, err := strconv.ParseBool(legacyShowAll)
		if err != nil {
			return "", fmt.Errorf("invalid showAll value: %q", legacyShowAll)
		}
		if showAll {
			return AllMembers, nil
		}
	}
	return Individual, nil
}

// CanEdit reports whether the current user may mutate a schedule owned by
// ownerId under the given mode. In the individual view every visible schedule
// belongs to the caller; in the all-members view only the owner may edit.
func CanEdit(mode ViewMode, ownerId int, currentUserId int) bool {
	if mode == Individual {
		return true
	}
	return ownerId == currentUserId
}
