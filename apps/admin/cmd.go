package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/housepoints/core/school"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	svc *school.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addteacher -username USERNAME [-name NAME] [-house ID] [-grades K,1,..] - create a teacher account")
	fmt.Println("  addhouse -name NAME [-color COLOR] - create a house")
	fmt.Println("  addstudent -name NAME [-grade GRADE] [-house ID] - create a student")
	fmt.Println("  award -teacher USERNAME -student ID -amount N -note NOTE - post a point award or deduction")
	fmt.Println("  reverse -id ID - reverse a ledger entry")
	fmt.Println("  setlimit -house ID -limit N - cap a house's assigned-student count")
	fmt.Println("  sort -student ID - spin the wheel and place a student")
	fmt.Println("  leaderboard - print houses ranked by points")
	fmt.Println("  ledger - print the transaction ledger, newest first")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addTeacherCmd := flag.NewFlagSet("addteacher", flag.ExitOnError)
	addTeacherUname := addTeacherCmd.String("username", "", "The teacher's username. The password will be prompted next.")
	addTeacherName := addTeacherCmd.String("name", "", "The teacher's display name.")
	addTeacherHouse := addTeacherCmd.Int("house", 0, "The teacher's home house ID.")
	addTeacherGrades := addTeacherCmd.String("grades", "", "Comma-separated grade grants, e.g. K,1,2.")

	addHouseCmd := flag.NewFlagSet("addhouse", flag.ExitOnError)
	addHouseName := addHouseCmd.String("name", "", "The house name.")
	addHouseColor := addHouseCmd.String("color", "", "The house color.")

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentName := addStudentCmd.String("name", "", "The student's name.")
	addStudentGrade := addStudentCmd.String("grade", "", "The student's grade label.")
	addStudentHouse := addStudentCmd.Int("house", 0, "The house to assign the student to.")

	awardCmd := flag.NewFlagSet("award", flag.ExitOnError)
	awardTeacher := awardCmd.String("teacher", "", "The acting teacher's (or admin's) username.")
	awardStudent := awardCmd.Int("student", 0, "The student's ID.")
	awardAmount := awardCmd.Int("amount", 0, "The point amount; negative to deduct.")
	awardNote := awardCmd.String("note", "", "The justification note.")

	reverseCmd := flag.NewFlagSet("reverse", flag.ExitOnError)
	reverseID := reverseCmd.Int("id", 0, "The ledger entry ID to reverse.")

	setLimitCmd := flag.NewFlagSet("setlimit", flag.ExitOnError)
	setLimitHouse := setLimitCmd.Int("house", 0, "The house ID.")
	setLimitN := setLimitCmd.Int("limit", -1, "The assigned-student cap; nonnegative.")

	sortCmd := flag.NewFlagSet("sort", flag.ExitOnError)
	sortStudent := sortCmd.Int("student", 0, "The student's ID.")

	switch args[1] {
	case "addteacher":
		if err := addTeacherCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addTeacherUname == "" {
			addTeacherCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addTeacherCmd.Usage()
			return errHelp
		}
		return cli.addTeacher(*addTeacherUname, *addTeacherName, string(pwd), *addTeacherHouse, splitGrades(*addTeacherGrades))
	case "addhouse":
		if err := addHouseCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.addHouse(*addHouseName, *addHouseColor)
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.addStudent(*addStudentName, *addStudentGrade, *addStudentHouse)
	case "award":
		if err := awardCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.award(*awardTeacher, *awardStudent, *awardAmount, *awardNote)
	case "reverse":
		if err := reverseCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.reverse(*reverseID)
	case "setlimit":
		if err := setLimitCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.setLimit(*setLimitHouse, *setLimitN)
	case "sort":
		if err := sortCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.sortStudent(*sortStudent)
	case "leaderboard":
		return cli.leaderboard()
	case "ledger":
		return cli.ledger()
	default:
		cli.printUsage()
		return errHelp
	}
}

func splitGrades(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
