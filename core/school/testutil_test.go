package school

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/housepoints/core/user"
)

// memStore is a minimal in-test Store; failSave simulates a broken backend
// to exercise the commit atomicity contract.
type memStore struct {
	doc      Document
	saves    int
	failSave bool
}

var errSaveFailed = errors.New("save failed")

func (s *memStore) Load() (Document, error) { return s.doc, nil }

func (s *memStore) Save(doc Document) error {
	if s.failSave {
		return errSaveFailed
	}
	s.doc = doc
	s.saves++
	return nil
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func newTestService(t *testing.T, doc Document) (*Service, *memStore) {
	t.Helper()
	store := &memStore{doc: doc}
	svc, err := NewService(store, nopLogger{})
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	return svc, store
}

func testDoc() Document {
	return Document{
		Users: []user.User{
			{Username: "principal", Password: "letmein12", Role: user.RoleAdmin, Name: "The Principal"},
			{
				Username:             "mchapman",
				Password:             "swordfish1",
				Role:                 user.RoleTeacher,
				Name:                 "M. Chapman",
				HouseID:              1,
				GradeAccess:          []string{"2"},
				AccessibleStudentIDs: []int{7},
			},
		},
		Houses: []House{
			{ID: 1, Name: "Phoenix", Color: "red"},
			{ID: 2, Name: "Kraken", Color: "blue"},
			{ID: 3, Name: "Griffin", Color: "gold"},
			{ID: 4, Name: "Dragon", Color: "green"},
		},
		Students: []Student{
			{ID: 1, Name: "Ada", Grade: "2nd Grade", HouseID: 1},
			{ID: 7, Name: "Grace", Grade: "5", HouseID: 2},
			{ID: 9, Name: "Linus", Grade: "3"},
		},
		Transactions: []Transaction{},
		Rewards:      []Reward{},
		HouseLimits:  map[int]int{},
		Counters:     Counters{House: 4, Student: 9},
	}
}

// checkBalances asserts the two maintained invariants: every student's
// points equal the sum of its ledger amounts, and every house's points
// equal the sum of its current students' points.
func checkBalances(t *testing.T, doc *Document) {
	t.Helper()
	for _, std := range doc.Students {
		var sum int
		for _, txn := range doc.Transactions {
			if txn.StudentID == std.ID {
				sum += txn.Amount
			}
		}
		if std.Points != sum {
			t.Errorf("student %d points = %d, want ledger sum %d", std.ID, std.Points, sum)
		}
	}
	for _, hse := range doc.Houses {
		var sum int
		for _, std := range doc.Students {
			if std.HouseID == hse.ID {
				sum += std.Points
			}
		}
		if hse.Points != sum {
			t.Errorf("house %d points = %d, want student sum %d", hse.ID, hse.Points, sum)
		}
	}
}

func (svc *Service) mustUser(t *testing.T, username string) user.User {
	t.Helper()
	usr, err := svc.GetUser(username)
	if err != nil {
		t.Fatalf("GetUser(%q) failed: %v", username, err)
	}
	return usr
}
