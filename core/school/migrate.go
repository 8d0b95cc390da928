package school

import (
	"fmt"
	"strings"

	"github.com/trezcool/housepoints/core"
	"github.com/trezcool/housepoints/core/user"
)

// migrate backfills an older document in place: collections added after the
// first release default to empty, teacher records gain empty access grants,
// and ID counters are floored to the highest existing ID. It reports whether
// anything was repaired so the caller can persist the result and later loads
// skip the backfill.
func (d *Document) migrate() (repaired bool) {
	if d.Users == nil {
		d.Users = []user.User{}
		repaired = true
	}
	if d.Houses == nil {
		d.Houses = []House{}
		repaired = true
	}
	if d.Students == nil {
		d.Students = []Student{}
		repaired = true
	}
	if d.Transactions == nil {
		d.Transactions = []Transaction{}
		repaired = true
	}
	if d.Rewards == nil {
		d.Rewards = []Reward{}
		repaired = true
	}
	if d.HouseLimits == nil {
		d.HouseLimits = map[int]int{}
		repaired = true
	}

	for i := range d.Users {
		usr := &d.Users[i]
		if !usr.IsTeacher() {
			continue
		}
		if usr.GradeAccess == nil {
			usr.GradeAccess = []string{}
			repaired = true
		}
		if usr.AccessibleStudentIDs == nil {
			usr.AccessibleStudentIDs = []int{}
			repaired = true
		}
	}

	for _, h := range d.Houses {
		if h.ID > d.Counters.House {
			d.Counters.House = h.ID
			repaired = true
		}
	}
	for _, s := range d.Students {
		if s.ID > d.Counters.Student {
			d.Counters.Student = s.ID
			repaired = true
		}
	}
	for _, t := range d.Transactions {
		if t.ID > d.Counters.Transaction {
			d.Counters.Transaction = t.ID
			repaired = true
		}
	}
	for _, r := range d.Rewards {
		if r.ID > d.Counters.Reward {
			d.Counters.Reward = r.ID
			repaired = true
		}
	}
	return repaired
}

// check is the minimal shape check run after migration. A violation means
// the persisted document is structurally corrupt and the core fails closed
// rather than operate on partial state.
func (d *Document) check() error {
	seenUnames := make(map[string]bool, len(d.Users))
	for _, usr := range d.Users {
		uname := strings.ToLower(usr.Username)
		if uname == "" {
			return core.NewCorruptDocumentError("user with empty username")
		}
		if seenUnames[uname] {
			return core.NewCorruptDocumentError(fmt.Sprintf("duplicate username %q", uname))
		}
		seenUnames[uname] = true
		if usr.Role != user.RoleAdmin && usr.Role != user.RoleTeacher {
			return core.NewCorruptDocumentError(fmt.Sprintf("user %q has unknown role %q", uname, usr.Role))
		}
	}

	if err := checkIDs("house", houseIDs(d.Houses)); err != nil {
		return err
	}
	if err := checkIDs("student", studentIDs(d.Students)); err != nil {
		return err
	}
	if err := checkIDs("transaction", transactionIDs(d.Transactions)); err != nil {
		return err
	}
	if err := checkIDs("reward", rewardIDs(d.Rewards)); err != nil {
		return err
	}

	for _, txn := range d.Transactions {
		if txn.Amount == 0 {
			return core.NewCorruptDocumentError(fmt.Sprintf("transaction %d has zero amount", txn.ID))
		}
	}
	for id, limit := range d.HouseLimits {
		if limit < 0 {
			return core.NewCorruptDocumentError(fmt.Sprintf("house %d has negative capacity limit", id))
		}
	}
	return nil
}

func checkIDs(entity string, ids []int) error {
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return core.NewCorruptDocumentError(fmt.Sprintf("%s with non-positive id %d", entity, id))
		}
		if seen[id] {
			return core.NewCorruptDocumentError(fmt.Sprintf("duplicate %s id %d", entity, id))
		}
		seen[id] = true
	}
	return nil
}

func houseIDs(houses []House) []int {
	ids := make([]int, len(houses))
	for i, h := range houses {
		ids[i] = h.ID
	}
	return ids
}

func studentIDs(students []Student) []int {
	ids := make([]int, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	return ids
}

func transactionIDs(txns []Transaction) []int {
	ids := make([]int, len(txns))
	for i, t := range txns {
		ids[i] = t.ID
	}
	return ids
}

func rewardIDs(rewards []Reward) []int {
	ids := make([]int, len(rewards))
	for i, r := range rewards {
		ids[i] = r.ID
	}
	return ids
}
