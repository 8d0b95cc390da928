package user

import (
	"github.com/trezcool/housepoints/core"
	"github.com/trezcool/housepoints/core/grade"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

var AllRoles = []string{RoleAdmin, RoleTeacher}

// User is an application account, keyed by its (lowercase) username.
// Only teachers carry access grants; an admin has implicit access to
// everything. The password is stored as-is: this app runs on a single
// trusted machine and credential hardening is explicitly out of scope.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name,omitempty"`
	// HouseID is the teacher's home house; 0 means none.
	HouseID int `json:"house_id,omitempty"`
	// GradeAccess holds grade labels granting blanket access to every
	// student in those grades. Compared in normalized form.
	GradeAccess []string `json:"grade_access"`
	// AccessibleStudentIDs holds explicit per-student grants.
	AccessibleStudentIDs []int `json:"accessible_student_ids"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// NormalizedGradeAccess returns the teacher's grade grants in canonical
// form, dropping entries that do not resolve to a grade.
func (u *User) NormalizedGradeAccess() []string {
	grades := make([]string, 0, len(u.GradeAccess))
	for _, g := range u.GradeAccess {
		if norm := grade.Normalize(g); norm != "" {
			grades = append(grades, norm)
		}
	}
	return grades
}

// NewTeacher contains information needed to create a new teacher account.
type NewTeacher struct {
	Username             string   `json:"username" validate:"required,min=3,alphanum_"`
	Name                 string   `json:"name"`
	Password             string   `json:"password" validate:"required"`
	PasswordConfirm      string   `json:"password_confirm" validate:"required,eqfield=Password"`
	HouseID              int      `json:"house_id"`
	GradeAccess          []string `json:"grade_access" validate:"omitempty,grades"`
	AccessibleStudentIDs []int    `json:"accessible_student_ids"`
}

func (nt *NewTeacher) Validate() error {
	nt.Username = core.CleanString(nt.Username, true /* lower */)
	nt.Name = core.CleanString(nt.Name)
	return core.Validate.Struct(nt)
}

// UpdateTeacherAccess defines what may be provided to edit a teacher's
// access grants. Both sets are replaced wholesale.
type UpdateTeacherAccess struct {
	GradeAccess          []string `json:"grade_access" validate:"omitempty,grades"`
	AccessibleStudentIDs []int    `json:"accessible_student_ids"`
}

func (ua *UpdateTeacherAccess) Validate() error {
	return core.Validate.Struct(ua)
}
