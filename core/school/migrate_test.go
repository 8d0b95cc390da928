package school

import (
	"testing"

	"github.com/trezcool/housepoints/core"
	"github.com/trezcool/housepoints/core/user"
)

func TestMigrateBackfillsTeacherGrants(t *testing.T) {
	// an older document: teachers predate access grants, counters were
	// never recorded
	doc := Document{
		Users: []user.User{
			{Username: "principal", Password: "pwd", Role: user.RoleAdmin},
			{Username: "old_teacher", Password: "pwd", Role: user.RoleTeacher},
		},
		Houses:   []House{{ID: 3, Name: "Phoenix"}},
		Students: []Student{{ID: 8, Name: "Ada", Grade: "2", HouseID: 3}},
	}
	store := &memStore{doc: doc}

	svc, err := NewService(store, nopLogger{})
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}

	got := svc.Document()
	teacher := got.Users[got.UserIndex("old_teacher")]
	if teacher.GradeAccess == nil || teacher.AccessibleStudentIDs == nil {
		t.Error("teacher grants not backfilled to empty collections")
	}
	if got.HouseLimits == nil || got.Transactions == nil || got.Rewards == nil {
		t.Error("missing collections not backfilled")
	}
	if got.Counters.House != 3 || got.Counters.Student != 8 {
		t.Errorf("counters = %+v, want floored to max IDs (3, 8)", got.Counters)
	}

	// the repair itself must have been persisted so later loads skip it
	if store.saves != 1 {
		t.Errorf("store.saves = %d, want 1 (repair persisted)", store.saves)
	}
	persisted := store.doc
	if persisted.migrate() {
		t.Error("persisted document still needs migration")
	}
}

func TestMigrateNoRepairNoSave(t *testing.T) {
	_, store := newTestService(t, testDoc())
	if store.saves != 0 {
		t.Errorf("store.saves = %d, want 0 for an up-to-date document", store.saves)
	}
}

func TestNewServiceFailsClosedOnCorruptDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{
			name: "duplicate student ids",
			doc: Document{
				Students: []Student{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}},
			},
		},
		{
			name: "duplicate usernames",
			doc: Document{
				Users: []user.User{
					{Username: "dup", Password: "p", Role: user.RoleAdmin},
					{Username: "DUP", Password: "p", Role: user.RoleTeacher},
				},
			},
		},
		{
			name: "unknown role",
			doc: Document{
				Users: []user.User{{Username: "x", Password: "p", Role: "janitor"}},
			},
		},
		{
			name: "zero-amount transaction",
			doc: Document{
				Transactions: []Transaction{{ID: 1, StudentID: 1, Amount: 0, Note: "n"}},
			},
		},
		{
			name: "negative capacity limit",
			doc: Document{
				Houses:      []House{{ID: 1, Name: "h"}},
				HouseLimits: map[int]int{1: -2},
			},
		},
		{
			name: "non-positive house id",
			doc: Document{
				Houses: []House{{ID: 0, Name: "h"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(&memStore{doc: tt.doc}, nopLogger{})
			if err == nil {
				t.Fatal("NewService() expected an error")
			}
			if !core.IsCorruptDocument(err) {
				t.Errorf("NewService() error = %v, want corrupt document", err)
			}
		})
	}
}
