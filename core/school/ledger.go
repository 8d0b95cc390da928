package school

import (
	"time"

	"github.com/trezcool/housepoints/core"
	"github.com/trezcool/housepoints/core/user"
)

// PostTransaction applies an award or deduction as one atomic triple:
// student balance, house balance (captured at post time) and ledger entry
// all change together or not at all. Teachers may only post for students in
// their accessible set; admins post for anyone.
func (svc *Service) PostTransaction(actor user.User, nt NewTransaction) (Transaction, error) {
	if err := nt.Validate(); err != nil {
		return Transaction{}, err
	}
	idx := svc.doc.studentIndex(nt.StudentID)
	if idx < 0 {
		return Transaction{}, core.NewValidationError(ErrStudentNotFound,
			core.FieldError{Field: "student_id", Error: ErrStudentNotFound.Error()})
	}
	if !actor.IsAdmin() && !canAccess(actor, svc.doc.Students[idx]) {
		return Transaction{}, core.NewValidationError(ErrStudentNotAccessible,
			core.FieldError{Field: "student_id", Error: ErrStudentNotAccessible.Error()})
	}

	next := svc.doc.clone()
	std := &next.Students[idx]
	std.Points += nt.Amount
	if hIdx := next.houseIndex(std.HouseID); hIdx >= 0 {
		next.Houses[hIdx].Points += nt.Amount
	}
	txn := Transaction{
		ID:        next.Counters.nextTransaction(),
		Timestamp: time.Now().UTC(),
		Teacher:   actor.Username,
		StudentID: std.ID,
		HouseID:   std.HouseID,
		Amount:    nt.Amount,
		Note:      nt.Note,
	}
	next.Transactions = append(next.Transactions, txn)
	if err := svc.commit(next); err != nil {
		return Transaction{}, err
	}
	svc.log.Debug("transaction posted", txn)
	return txn, nil
}

// ReverseTransaction undoes a ledger entry: both balances are restored and
// the entry is removed outright, not compensated. A missing ID is a lookup
// miss and returns false. A student or house deleted since the post is
// skipped silently; the rest of the reversal still applies.
func (svc *Service) ReverseTransaction(id int) (bool, error) {
	tIdx := svc.doc.transactionIndex(id)
	if tIdx < 0 {
		return false, nil
	}

	next := svc.doc.clone()
	txn := next.Transactions[tIdx]
	if sIdx := next.studentIndex(txn.StudentID); sIdx >= 0 {
		next.Students[sIdx].Points -= txn.Amount
	}
	if hIdx := next.houseIndex(txn.HouseID); hIdx >= 0 {
		next.Houses[hIdx].Points -= txn.Amount
	}
	next.Transactions = append(next.Transactions[:tIdx], next.Transactions[tIdx+1:]...)
	if err := svc.commit(next); err != nil {
		return false, err
	}
	svc.log.Debug("transaction reversed", txn)
	return true, nil
}
