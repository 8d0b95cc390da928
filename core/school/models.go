package school

import (
	"sort"
	"strings"
	"time"

	"github.com/trezcool/housepoints/core"
	"github.com/trezcool/housepoints/core/user"
)

type (
	// House is a team students belong to, with an aggregate point total.
	// Points always equal the sum of the current points of the students
	// assigned to it; the total is maintained incrementally by the ledger
	// and re-homing operations, never recomputed on read.
	House struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Color  string `json:"color,omitempty"`
		Logo   []byte `json:"logo,omitempty"`
		Points int    `json:"points"` // may be negative
	}

	// Student belongs to at most one house. HouseID 0 means unassigned.
	// Points equal the sum of all ledger entry amounts referencing the
	// student.
	Student struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		Grade   string `json:"grade,omitempty"` // free text; compare via grade.Normalize
		HouseID int    `json:"house_id,omitempty"`
		Points  int    `json:"points"`
		Photo   []byte `json:"photo,omitempty"`
	}

	// Transaction is one immutable point award or deduction. HouseID is
	// the student's house at post time, captured rather than live-joined;
	// 0 means the student was unassigned.
	Transaction struct {
		ID        int       `json:"id"`
		Timestamp time.Time `json:"timestamp"` // UTC
		Teacher   string    `json:"teacher"`   // acting username
		StudentID int       `json:"student_id"`
		HouseID   int       `json:"house_id,omitempty"`
		Amount    int       `json:"amount"` // nonzero
		Note      string    `json:"note"`
	}

	// Reward is a catalog item; no redemption flow is modeled.
	Reward struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		Cost int    `json:"cost"`
	}

	// Counters hold the next-ID sequences, one per entity type. IDs are
	// never reused; users are keyed by username and need none.
	Counters struct {
		House       int `json:"house"`
		Student     int `json:"student"`
		Transaction int `json:"transaction"`
		Reward      int `json:"reward"`
	}

	// Document is the whole persisted state and the unit of persistence:
	// every mutation replaces the stored copy in full.
	Document struct {
		Users        []user.User   `json:"users"`
		Houses       []House       `json:"houses"`
		Students     []Student     `json:"students"`
		Transactions []Transaction `json:"transactions"`
		Rewards      []Reward      `json:"rewards"`
		// HouseLimits caps the assigned-student count per house ID.
		// Absence of an entry means unlimited.
		HouseLimits map[int]int `json:"house_limits"`
		Counters    Counters    `json:"counters"`
	}
)

// Store persists the Document with read/replace-whole-document semantics.
// Partial writes do not exist; at most one writer is active at any instant.
type Store interface {
	Load() (Document, error)
	Save(Document) error
}

func (c *Counters) nextHouse() int       { c.House++; return c.House }
func (c *Counters) nextStudent() int     { c.Student++; return c.Student }
func (c *Counters) nextTransaction() int { c.Transaction++; return c.Transaction }
func (c *Counters) nextReward() int      { c.Reward++; return c.Reward }

func (d *Document) houseIndex(id int) int {
	if id <= 0 {
		return -1
	}
	for i := range d.Houses {
		if d.Houses[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) studentIndex(id int) int {
	if id <= 0 {
		return -1
	}
	for i := range d.Students {
		if d.Students[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) transactionIndex(id int) int {
	if id <= 0 {
		return -1
	}
	for i := range d.Transactions {
		if d.Transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) UserIndex(username string) int {
	username = core.CleanString(username, true /* lower */)
	for i := range d.Users {
		if strings.ToLower(d.Users[i].Username) == username {
			return i
		}
	}
	return -1
}

// HouseIndexByName does a case-insensitive name match.
func (d *Document) HouseIndexByName(name string) int {
	name = core.CleanString(name, true /* lower */)
	for i := range d.Houses {
		if strings.ToLower(d.Houses[i].Name) == name {
			return i
		}
	}
	return -1
}

// assignedCount counts the students currently assigned to a house.
func (d *Document) assignedCount(houseID int) int {
	var n int
	for i := range d.Students {
		if d.Students[i].HouseID == houseID {
			n++
		}
	}
	return n
}

// clone copies the document so a mutation can be applied and persisted
// before being swapped in; a failed save then leaves the original intact.
// Entry structs are copied by value, so nested blobs may share backing
// arrays: mutations replace entries, they never edit blobs in place.
func (d *Document) clone() *Document {
	cp := *d
	cp.Users = append([]user.User(nil), d.Users...)
	cp.Houses = append([]House(nil), d.Houses...)
	cp.Students = append([]Student(nil), d.Students...)
	cp.Transactions = append([]Transaction(nil), d.Transactions...)
	cp.Rewards = append([]Reward(nil), d.Rewards...)
	cp.HouseLimits = make(map[int]int, len(d.HouseLimits))
	for id, limit := range d.HouseLimits {
		cp.HouseLimits[id] = limit
	}
	return &cp
}

// moveStudent re-homes a student and rebalances both house totals as one
// logical step: debit the old house (if any), credit the new one (if any),
// then update the student's house. newHouseID 0 unassigns.
func moveStudent(doc *Document, sIdx, newHouseID int) {
	std := &doc.Students[sIdx]
	if oldIdx := doc.houseIndex(std.HouseID); oldIdx >= 0 {
		doc.Houses[oldIdx].Points -= std.Points
	}
	if newIdx := doc.houseIndex(newHouseID); newIdx >= 0 {
		doc.Houses[newIdx].Points += std.Points
	}
	std.HouseID = newHouseID
}

func sortStudentsByName(students []Student) {
	sort.Slice(students, func(i, j int) bool {
		si, sj := students[i], students[j]
		if ni, nj := strings.ToLower(si.Name), strings.ToLower(sj.Name); ni != nj {
			return ni < nj
		}
		return si.ID < sj.ID
	})
}

// NewHouse contains information needed to create a new House.
type NewHouse struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
	Logo  []byte `json:"logo"`
}

func (nh *NewHouse) Validate() error {
	nh.Name = core.CleanString(nh.Name)
	return core.Validate.Struct(nh)
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name    string `json:"name" validate:"required"`
	Grade   string `json:"grade"`
	HouseID int    `json:"house_id"`
	Photo   []byte `json:"photo"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Grade = core.CleanString(ns.Grade)
	return core.Validate.Struct(ns)
}

// NewTransaction contains information needed to post a point award or
// deduction. The note is mandatory: every point movement carries its
// justification.
type NewTransaction struct {
	StudentID int    `json:"student_id" validate:"required"`
	Amount    int    `json:"amount" validate:"required"`
	Note      string `json:"note" validate:"required"`
}

func (nt *NewTransaction) Validate() error {
	nt.Note = core.CleanString(nt.Note)
	return core.Validate.Struct(nt)
}

// NewReward contains information needed to create a new catalog Reward.
type NewReward struct {
	Name string `json:"name" validate:"required"`
	Cost int    `json:"cost" validate:"required,gt=0"`
}

func (nr *NewReward) Validate() error {
	nr.Name = core.CleanString(nr.Name)
	return core.Validate.Struct(nr)
}
