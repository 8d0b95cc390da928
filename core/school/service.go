package school

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/housepoints/core"
	"github.com/trezcool/housepoints/core/user"
)

var (
	// errors
	ErrStudentNotFound    = errors.New("student not found")
	ErrHouseNotFound      = errors.New("house not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrHouseNameExists    = errors.New("a house with this name already exists")
	ErrUsernameExists     = errors.New("a user with this username already exists")
	ErrHouseNotEmpty      = errors.New("house still has students assigned")
	ErrNotATeacher        = errors.New("user is not a teacher")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNegativeLimit      = errors.New("capacity limit cannot be negative")
)

// Service owns the in-memory Document and replaces the persisted copy in
// full on every mutation. Single-writer: one session drives it at a time.
type Service struct {
	store      Store
	log        core.Logger
	doc        *Document
	spinBudget int
}

// NewService loads the document, runs the additive schema backfill and the
// minimal shape check, and persists any repair so later loads skip it.
func NewService(store Store, logger core.Logger) (*Service, error) {
	doc, err := store.Load()
	if err != nil {
		return nil, errors.Wrap(err, "loading document")
	}
	repaired := doc.migrate()
	if err := doc.check(); err != nil {
		return nil, err
	}
	if repaired {
		if err := store.Save(doc); err != nil {
			return nil, errors.Wrap(err, "persisting document repair")
		}
		logger.Info("document schema backfilled")
	}
	budget := core.Conf.GetInt("wheelSpinBudget")
	if budget <= 0 {
		budget = 20
	}
	return &Service{store: store, log: logger, doc: &doc, spinBudget: budget}, nil
}

// Document exposes the current in-memory state to the presentation layer.
// Callers must treat it as read-only; mutations go through the operations.
func (svc *Service) Document() *Document {
	return svc.doc
}

// commit persists the mutated clone and only then swaps it in, so a failed
// save leaves both memory and storage at the pre-operation state.
func (svc *Service) commit(next *Document) error {
	if err := svc.store.Save(*next); err != nil {
		return errors.Wrap(err, "saving document")
	}
	svc.doc = next
	return nil
}

// Authenticate checks credentials and opens a Session for the matched user.
func (svc *Service) Authenticate(username, password string) (user.Session, error) {
	idx := svc.doc.UserIndex(username)
	if idx < 0 || svc.doc.Users[idx].Password != password {
		return user.Session{}, ErrInvalidCredentials
	}
	usr := svc.doc.Users[idx]
	svc.log.Debug("user logged in", usr.Username)
	return user.NewSession(usr), nil
}

// GetUser looks a user up by username.
func (svc *Service) GetUser(username string) (user.User, error) {
	idx := svc.doc.UserIndex(username)
	if idx < 0 {
		return user.User{}, ErrUserNotFound
	}
	return svc.doc.Users[idx], nil
}

// AddTeacher creates a teacher account with its initial access grants.
func (svc *Service) AddTeacher(nt user.NewTeacher) (user.User, error) {
	if err := nt.Validate(); err != nil {
		return user.User{}, err
	}
	if svc.doc.UserIndex(nt.Username) >= 0 {
		return user.User{}, core.NewValidationError(ErrUsernameExists,
			core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
	}
	if nt.HouseID != 0 && svc.doc.houseIndex(nt.HouseID) < 0 {
		return user.User{}, core.NewValidationError(ErrHouseNotFound,
			core.FieldError{Field: "house_id", Error: ErrHouseNotFound.Error()})
	}

	usr := user.User{
		Username:             nt.Username,
		Password:             nt.Password,
		Role:                 user.RoleTeacher,
		Name:                 nt.Name,
		HouseID:              nt.HouseID,
		GradeAccess:          append([]string{}, nt.GradeAccess...),
		AccessibleStudentIDs: append([]int{}, nt.AccessibleStudentIDs...),
	}
	next := svc.doc.clone()
	next.Users = append(next.Users, usr)
	if err := svc.commit(next); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

// UpdateAccess replaces a teacher's access grants wholesale.
func (svc *Service) UpdateAccess(username string, ua user.UpdateTeacherAccess) (user.User, error) {
	if err := ua.Validate(); err != nil {
		return user.User{}, err
	}
	idx := svc.doc.UserIndex(username)
	if idx < 0 {
		return user.User{}, ErrUserNotFound
	}
	if !svc.doc.Users[idx].IsTeacher() {
		return user.User{}, core.NewValidationError(ErrNotATeacher,
			core.FieldError{Field: "username", Error: ErrNotATeacher.Error()})
	}

	next := svc.doc.clone()
	usr := &next.Users[idx]
	usr.GradeAccess = append([]string{}, ua.GradeAccess...)
	usr.AccessibleStudentIDs = append([]int{}, ua.AccessibleStudentIDs...)
	if err := svc.commit(next); err != nil {
		return user.User{}, err
	}
	return *usr, nil
}

// AddHouse creates a house; names are unique case-insensitively.
func (svc *Service) AddHouse(nh NewHouse) (House, error) {
	if err := nh.Validate(); err != nil {
		return House{}, err
	}
	if svc.doc.HouseIndexByName(nh.Name) >= 0 {
		return House{}, core.NewValidationError(ErrHouseNameExists,
			core.FieldError{Field: "name", Error: ErrHouseNameExists.Error()})
	}

	next := svc.doc.clone()
	hse := House{
		ID:    next.Counters.nextHouse(),
		Name:  nh.Name,
		Color: nh.Color,
		Logo:  nh.Logo,
	}
	next.Houses = append(next.Houses, hse)
	if err := svc.commit(next); err != nil {
		return House{}, err
	}
	return hse, nil
}

// DeleteHouse removes a house. It is blocked while any student references
// the house; a missing ID is a lookup miss, not an error.
func (svc *Service) DeleteHouse(id int) (bool, error) {
	idx := svc.doc.houseIndex(id)
	if idx < 0 {
		return false, nil
	}
	if svc.doc.assignedCount(id) > 0 {
		return false, core.NewValidationError(ErrHouseNotEmpty,
			core.FieldError{Field: "house_id", Error: ErrHouseNotEmpty.Error()})
	}

	next := svc.doc.clone()
	next.Houses = append(next.Houses[:idx], next.Houses[idx+1:]...)
	delete(next.HouseLimits, id)
	if err := svc.commit(next); err != nil {
		return false, err
	}
	return true, nil
}

// SetHouseLimit caps the assigned-student count of a house. A limit of 0 is
// a legal cap (the house is full); use ClearHouseLimit for unlimited.
func (svc *Service) SetHouseLimit(houseID, limit int) error {
	if svc.doc.houseIndex(houseID) < 0 {
		return core.NewValidationError(ErrHouseNotFound,
			core.FieldError{Field: "house_id", Error: ErrHouseNotFound.Error()})
	}
	if limit < 0 {
		return core.NewValidationError(ErrNegativeLimit,
			core.FieldError{Field: "limit", Error: ErrNegativeLimit.Error()})
	}
	next := svc.doc.clone()
	next.HouseLimits[houseID] = limit
	return svc.commit(next)
}

// ClearHouseLimit removes a house's cap, making it unlimited again.
func (svc *Service) ClearHouseLimit(houseID int) error {
	if svc.doc.houseIndex(houseID) < 0 {
		return core.NewValidationError(ErrHouseNotFound,
			core.FieldError{Field: "house_id", Error: ErrHouseNotFound.Error()})
	}
	next := svc.doc.clone()
	delete(next.HouseLimits, houseID)
	return svc.commit(next)
}

// AddStudent creates a student, optionally assigned to a house.
func (svc *Service) AddStudent(ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}
	if ns.HouseID != 0 && svc.doc.houseIndex(ns.HouseID) < 0 {
		return Student{}, core.NewValidationError(ErrHouseNotFound,
			core.FieldError{Field: "house_id", Error: ErrHouseNotFound.Error()})
	}

	next := svc.doc.clone()
	std := Student{
		ID:      next.Counters.nextStudent(),
		Name:    ns.Name,
		Grade:   ns.Grade,
		HouseID: ns.HouseID,
		Photo:   ns.Photo,
	}
	next.Students = append(next.Students, std)
	if err := svc.commit(next); err != nil {
		return Student{}, err
	}
	return std, nil
}

// DeleteStudent removes a student, first debiting its house so the house
// total stays the sum of its remaining students. Ledger entries referencing
// the student are retained; resolving them later is a lookup miss.
func (svc *Service) DeleteStudent(id int) (bool, error) {
	idx := svc.doc.studentIndex(id)
	if idx < 0 {
		return false, nil
	}

	next := svc.doc.clone()
	moveStudent(next, idx, 0)
	next.Students = append(next.Students[:idx], next.Students[idx+1:]...)
	if err := svc.commit(next); err != nil {
		return false, err
	}
	return true, nil
}

// ReassignStudent re-homes a student, rebalancing both house totals in one
// logical step. houseID 0 unassigns.
func (svc *Service) ReassignStudent(studentID, houseID int) error {
	idx := svc.doc.studentIndex(studentID)
	if idx < 0 {
		return core.NewValidationError(ErrStudentNotFound,
			core.FieldError{Field: "student_id", Error: ErrStudentNotFound.Error()})
	}
	if houseID != 0 && svc.doc.houseIndex(houseID) < 0 {
		return core.NewValidationError(ErrHouseNotFound,
			core.FieldError{Field: "house_id", Error: ErrHouseNotFound.Error()})
	}

	next := svc.doc.clone()
	moveStudent(next, idx, houseID)
	return svc.commit(next)
}

// AddReward creates a catalog reward.
func (svc *Service) AddReward(nr NewReward) (Reward, error) {
	if err := nr.Validate(); err != nil {
		return Reward{}, err
	}
	next := svc.doc.clone()
	rwd := Reward{
		ID:   next.Counters.nextReward(),
		Name: nr.Name,
		Cost: nr.Cost,
	}
	next.Rewards = append(next.Rewards, rwd)
	if err := svc.commit(next); err != nil {
		return Reward{}, err
	}
	return rwd, nil
}

// Leaderboard returns the houses ranked by points, highest first.
func (svc *Service) Leaderboard() []House {
	board := append([]House(nil), svc.doc.Houses...)
	sort.Slice(board, func(i, j int) bool {
		if board[i].Points != board[j].Points {
			return board[i].Points > board[j].Points
		}
		return strings.ToLower(board[i].Name) < strings.ToLower(board[j].Name)
	})
	return board
}

// Ledger returns the transactions ordered for display: descending by
// timestamp, newest first.
func (svc *Service) Ledger() []Transaction {
	ledger := append([]Transaction(nil), svc.doc.Transactions...)
	sort.Slice(ledger, func(i, j int) bool {
		if !ledger[i].Timestamp.Equal(ledger[j].Timestamp) {
			return ledger[i].Timestamp.After(ledger[j].Timestamp)
		}
		return ledger[i].ID > ledger[j].ID
	})
	return ledger
}
