package jsondoc

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/trezcool/housepoints/core/school"
	"github.com/trezcool/housepoints/core/user"
)

func TestLoadMissingFile(t *testing.T) {
	store := Open(filepath.Join(t.TempDir(), "school.json"))

	doc, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(doc.Users) != 0 || len(doc.Houses) != 0 {
		t.Error("missing file must yield an empty document")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "school.json")
	store := Open(path)

	doc := school.Document{
		Users: []user.User{
			{Username: "t", Password: "pwd", Role: user.RoleTeacher, GradeAccess: []string{"K"}, AccessibleStudentIDs: []int{2}},
		},
		Houses:      []school.House{{ID: 1, Name: "Phoenix", Points: 40}},
		Students:    []school.Student{{ID: 2, Name: "Ada", Grade: "2", HouseID: 1, Points: 40}},
		HouseLimits: map[int]int{1: 10},
		Counters:    school.Counters{House: 1, Student: 2},
	}
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got.Users) != 1 || got.Users[0].Username != "t" {
		t.Errorf("users not round-tripped: %+v", got.Users)
	}
	if got.Houses[0].Points != 40 || got.Students[0].HouseID != 1 {
		t.Error("balances not round-tripped")
	}
	if got.HouseLimits[1] != 10 {
		t.Errorf("HouseLimits[1] = %d, want 10", got.HouseLimits[1])
	}
	if got.Counters != doc.Counters {
		t.Errorf("counters = %+v, want %+v", got.Counters, doc.Counters)
	}
}

func TestSaveReplacesWholeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "school.json")
	store := Open(path)

	if err := store.Save(school.Document{Houses: []school.House{{ID: 1, Name: "Phoenix"}}}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := store.Save(school.Document{Houses: []school.House{{ID: 2, Name: "Kraken"}}}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got.Houses) != 1 || got.Houses[0].Name != "Kraken" {
		t.Errorf("houses = %+v, want only Kraken", got.Houses)
	}

	// no stray temp files left behind
	entries, err := ioutil.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1", len(entries))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "school.json")
	if err := ioutil.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path).Load(); err == nil {
		t.Error("Load() expected an error for a corrupt file")
	}
}
