package school

import (
	"github.com/pkg/errors"

	"github.com/trezcool/housepoints/core/grade"
	"github.com/trezcool/housepoints/core/user"
)

var ErrStudentNotAccessible = errors.New("student is not accessible to this teacher")

// UngroupedLabel is the display bucket for students whose grade does not
// normalize to a canonical label.
const UngroupedLabel = "Ungrouped"

// AccessibleStudents computes the set of students an actor may act on:
// everything for an admin; for a teacher, the union of explicit per-student
// grants and grade-based grants. A teacher with no grants of either kind
// gets an empty set, never an error. The result is flat and name-sorted;
// per-grade grouping is a display concern (see GroupByGrade).
func (svc *Service) AccessibleStudents(actor user.User) []Student {
	return accessibleStudents(actor, svc.doc.Students)
}

func accessibleStudents(actor user.User, students []Student) []Student {
	if actor.IsAdmin() {
		all := append([]Student(nil), students...)
		sortStudentsByName(all)
		return all
	}

	ids := make(map[int]bool, len(actor.AccessibleStudentIDs))
	for _, id := range actor.AccessibleStudentIDs {
		ids[id] = true
	}
	grades := make(map[string]bool, len(actor.GradeAccess))
	for _, g := range actor.NormalizedGradeAccess() {
		grades[g] = true
	}

	accessible := make([]Student, 0, len(ids))
	for _, std := range students {
		if ids[std.ID] {
			accessible = append(accessible, std)
			continue
		}
		// grade grants never match an unknown grade; such students are
		// reachable only via explicit per-student grants
		if norm := grade.Normalize(std.Grade); norm != "" && grades[norm] {
			accessible = append(accessible, std)
		}
	}
	sortStudentsByName(accessible)
	return accessible
}

// canAccess reports whether a single student is in the actor's accessible
// set. Same rules as AccessibleStudents.
func canAccess(actor user.User, std Student) bool {
	for _, id := range actor.AccessibleStudentIDs {
		if id == std.ID {
			return true
		}
	}
	if norm := grade.Normalize(std.Grade); norm != "" {
		for _, g := range actor.NormalizedGradeAccess() {
			if g == norm {
				return true
			}
		}
	}
	return false
}

// GroupByGrade buckets students by canonical grade for the grade-scoped
// dropdown. Keys are canonical labels plus UngroupedLabel.
func GroupByGrade(students []Student) map[string][]Student {
	groups := make(map[string][]Student)
	for _, std := range students {
		key := grade.Normalize(std.Grade)
		if key == "" {
			key = UngroupedLabel
		}
		groups[key] = append(groups[key], std)
	}
	for _, grp := range groups {
		sortStudentsByName(grp)
	}
	return groups
}
