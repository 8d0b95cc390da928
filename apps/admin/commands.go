package main

import (
	"fmt"

	"github.com/trezcool/housepoints/core/school"
	"github.com/trezcool/housepoints/core/user"
)

func (cli *commandLine) addTeacher(uname, name, pwd string, houseID int, grades []string) error {
	usr, err := cli.svc.AddTeacher(user.NewTeacher{
		Username:        uname,
		Name:            name,
		Password:        pwd,
		PasswordConfirm: pwd,
		HouseID:         houseID,
		GradeAccess:     grades,
	})
	if err != nil {
		return err
	}
	fmt.Printf("teacher %q created\n", usr.Username)
	return nil
}

func (cli *commandLine) addHouse(name, color string) error {
	hse, err := cli.svc.AddHouse(school.NewHouse{Name: name, Color: color})
	if err != nil {
		return err
	}
	fmt.Printf("house %q created with id %d\n", hse.Name, hse.ID)
	return nil
}

func (cli *commandLine) addStudent(name, grade string, houseID int) error {
	std, err := cli.svc.AddStudent(school.NewStudent{Name: name, Grade: grade, HouseID: houseID})
	if err != nil {
		return err
	}
	fmt.Printf("student %q created with id %d\n", std.Name, std.ID)
	return nil
}

func (cli *commandLine) award(teacher string, studentID, amount int, note string) error {
	actor, err := cli.svc.GetUser(teacher)
	if err != nil {
		return err
	}
	txn, err := cli.svc.PostTransaction(actor, school.NewTransaction{
		StudentID: studentID,
		Amount:    amount,
		Note:      note,
	})
	if err != nil {
		return err
	}
	fmt.Printf("transaction %d posted: %+d points for student %d\n", txn.ID, txn.Amount, txn.StudentID)
	return nil
}

func (cli *commandLine) reverse(id int) error {
	ok, err := cli.svc.ReverseTransaction(id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("no transaction with id %d\n", id)
		return nil
	}
	fmt.Printf("transaction %d reversed\n", id)
	return nil
}

func (cli *commandLine) setLimit(houseID, limit int) error {
	if err := cli.svc.SetHouseLimit(houseID, limit); err != nil {
		return err
	}
	fmt.Printf("house %d capped at %d students\n", houseID, limit)
	return nil
}

func (cli *commandLine) sortStudent(studentID int) error {
	wheel, err := cli.svc.HouseWheel(nil)
	if err != nil {
		return err
	}
	hse, spins, err := cli.svc.SortStudent(studentID, wheel)
	if err != nil {
		return err
	}
	fmt.Printf("student %d placed in %q after %d spin(s)\n", studentID, hse.Name, len(spins))
	return nil
}

func (cli *commandLine) leaderboard() error {
	for rank, hse := range cli.svc.Leaderboard() {
		fmt.Printf("%2d. %-20s %6d points\n", rank+1, hse.Name, hse.Points)
	}
	return nil
}

func (cli *commandLine) ledger() error {
	for _, txn := range cli.svc.Ledger() {
		fmt.Printf("%s  #%-4d %-12s student:%-4d %+5d  %s\n",
			txn.Timestamp.Format("2006-01-02 15:04"), txn.ID, txn.Teacher, txn.StudentID, txn.Amount, txn.Note)
	}
	return nil
}
