package user

import "testing"

func TestNewTeacherValidate(t *testing.T) {
	valid := func() NewTeacher {
		return NewTeacher{
			Username:        "teach_01",
			Name:            "A Teacher",
			Password:        "gr4vity-boots",
			PasswordConfirm: "gr4vity-boots",
			GradeAccess:     []string{"K", "2nd Grade"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*NewTeacher)
		wantErr bool
	}{
		{name: "valid", mutate: func(nt *NewTeacher) {}},
		{name: "username is lowered", mutate: func(nt *NewTeacher) { nt.Username = " TEACH_01 " }},
		{name: "missing username", mutate: func(nt *NewTeacher) { nt.Username = "" }, wantErr: true},
		{name: "short username", mutate: func(nt *NewTeacher) { nt.Username = "ab" }, wantErr: true},
		{name: "missing password", mutate: func(nt *NewTeacher) { nt.Password = ""; nt.PasswordConfirm = "" }, wantErr: true},
		{name: "password mismatch", mutate: func(nt *NewTeacher) { nt.PasswordConfirm = "different-0ne" }, wantErr: true},
		{name: "short password", mutate: func(nt *NewTeacher) { nt.Password = "abc1-xy"; nt.PasswordConfirm = "abc1-xy" }, wantErr: true},
		{name: "password with whitespace", mutate: func(nt *NewTeacher) { nt.Password = "has a space1"; nt.PasswordConfirm = "has a space1" }, wantErr: true},
		{name: "all-numeric password", mutate: func(nt *NewTeacher) { nt.Password = "1234567890"; nt.PasswordConfirm = "1234567890" }, wantErr: true},
		{name: "password too similar to username", mutate: func(nt *NewTeacher) { nt.Password = "teach_012"; nt.PasswordConfirm = "teach_012" }, wantErr: true},
		{name: "unknown grade grant", mutate: func(nt *NewTeacher) { nt.GradeAccess = []string{"blue"} }, wantErr: true},
		{name: "no grade grants", mutate: func(nt *NewTeacher) { nt.GradeAccess = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nt := valid()
			tt.mutate(&nt)
			if err := nt.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewTeacherValidateCleans(t *testing.T) {
	nt := NewTeacher{
		Username:        "  NewTeach ",
		Name:            "  New Teach ",
		Password:        "gr4vity-boots",
		PasswordConfirm: "gr4vity-boots",
	}
	if err := nt.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if nt.Username != "newteach" {
		t.Errorf("nt.Username = %q, want %q", nt.Username, "newteach")
	}
	if nt.Name != "New Teach" {
		t.Errorf("nt.Name = %q, want %q", nt.Name, "New Teach")
	}
}

func TestUpdateTeacherAccessValidate(t *testing.T) {
	ua := UpdateTeacherAccess{GradeAccess: []string{"5th Grade"}}
	if err := ua.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}

	ua = UpdateTeacherAccess{GradeAccess: []string{"nope"}}
	if err := ua.Validate(); err == nil {
		t.Error("Validate() accepted an unknown grade grant")
	}
}

func TestNormalizedGradeAccess(t *testing.T) {
	usr := User{
		Role:        RoleTeacher,
		GradeAccess: []string{"Kindergarten", "2nd Grade", "blue", "05"},
	}
	got := usr.NormalizedGradeAccess()
	want := []string{"K", "2", "5"}
	if len(got) != len(want) {
		t.Fatalf("NormalizedGradeAccess() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NormalizedGradeAccess() = %v, want %v", got, want)
		}
	}
}
