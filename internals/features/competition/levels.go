// Package competition holds helpers shared by the attendance and statistics features.
package competition

import (
	"sort"
	"strings"
)

// School levels as stored on target groups.
const (
	SchoolLevelPrimary         = "Primary"
	SchoolLevelSecondary       = "Secondary"
	SchoolLevelHigherEducation = "Higher Education"
	SchoolLevelUnknown         = "Unknown"
)

var contestLevels = map[string]string{
	SchoolLevelPrimary:         "Kids",
	SchoolLevelSecondary:       "Teens",
	SchoolLevelHigherEducation: "Youth",
}

var schoolLevelPriority = map[string]int{
	SchoolLevelPrimary:         0,
	SchoolLevelSecondary:       1,
	SchoolLevelHigherEducation: 2,
}

// NormalizeSchoolLevel trims the level and maps blanks to Unknown.
func NormalizeSchoolLevel(level string) string {
	level = strings.TrimSpace(level)
	if level == "" {
		return SchoolLevelUnknown
	}
	return level
}

// ContestLevel maps a school level to its display label (Kids/Teens/Youth).
// Levels without a label are returned as they are.
func ContestLevel(schoolLevel string) string {
	schoolLevel = NormalizeSchoolLevel(schoolLevel)
	if lbl, ok := contestLevels[schoolLevel]; ok {
		return lbl
	}
	return schoolLevel
}

// SchoolLevelLess orders Primary, Secondary, Higher Education, then the rest by name.
func SchoolLevelLess(a, b string) bool {
	pa, okA := schoolLevelPriority[a]
	pb, okB := schoolLevelPriority[b]
	switch {
	case okA && okB:
		return pa < pb
	case okA:
		return true
	case okB:
		return false
	default:
		return a < b
	}
}

// SortSchoolLevels sorts levels in place with SchoolLevelLess.
func SortSchoolLevels(levels []string) {
	sort.SliceStable(levels, func(i, j int) bool { return SchoolLevelLess(levels[i], levels[j]) })
}
