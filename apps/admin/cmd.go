package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/classroom"
)

var (
	readConfirmFunc = readConfirm // mockable

	errHelp    = errors.New("help provided")
	errAborted = errors.New("aborted")
)

type commandLine struct {
	class  *classroom.Classroom
	conf   *core.Config
	logger core.Logger
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  students - list the roster")
	fmt.Fprintln(cli.out, "  addstudent -name NAME [-num NUMBER] [-memo MEMO] - add a student; the number defaults to the next free one")
	fmt.Fprintln(cli.out, "  deletestudent -id ID [-yes] - delete a student after confirmation")
	fmt.Fprintln(cli.out, "  calendar [-mode attendance|assignment|counseling] [-year YEAR] [-month MONTH] - print a month of calendar dots")
	fmt.Fprintln(cli.out, "  export [-format csv|xlsx] [-dir DIR] - save the current report")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentName := addStudentCmd.String("name", "", "The student's name.")
	addStudentNum := addStudentCmd.String("num", "", "The student's number (digits only).")
	addStudentMemo := addStudentCmd.String("memo", "", "A memo about the student.")

	deleteStudentCmd := flag.NewFlagSet("deletestudent", flag.ExitOnError)
	deleteStudentID := deleteStudentCmd.String("id", "", "The student's id (see `students`).")
	deleteStudentYes := deleteStudentCmd.Bool("yes", false, "Skip the confirmation prompt.")

	now := time.Now()
	calendarCmd := flag.NewFlagSet("calendar", flag.ExitOnError)
	calendarMode := calendarCmd.String("mode", "attendance", "attendance, assignment or counseling.")
	calendarYear := calendarCmd.Int("year", now.Year(), "The year.")
	calendarMonth := calendarCmd.Int("month", int(now.Month()), "The month (1-12).")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportFormat := exportCmd.String("format", "csv", "csv or xlsx.")
	exportDir := exportCmd.String("dir", cli.conf.Export.Dir, "The directory to save the report into.")

	switch args[1] {
	case "students":
		return cli.listStudents()
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentName == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentNum, *addStudentName, *addStudentMemo)
	case "deletestudent":
		if err := deleteStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *deleteStudentID == "" {
			deleteStudentCmd.Usage()
			return errHelp
		}
		return cli.deleteStudent(*deleteStudentID, *deleteStudentYes)
	case "calendar":
		if err := calendarCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.calendar(*calendarYear, *calendarMonth, *calendarMode)
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.export(*exportFormat, *exportDir)
	default:
		cli.printUsage()
		return errHelp
	}
}

// readConfirm reads a single key press; only `y` confirms.
func readConfirm(fd int) (bool, error) {
	if !term.IsTerminal(fd) {
		return false, errors.New("not a terminal: use -yes to confirm")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return false, err
	}
	defer func() { _ = term.Restore(fd, state) }()

	buf := make([]byte, 1)
	if _, err := os.Stdin.Read(buf); err != nil {
		return false, err
	}
	return buf[0] == 'y' || buf[0] == 'Y', nil
}

func (cli *commandLine) confirm(prompt string) (bool, error) {
	fmt.Fprint(cli.out, prompt+" [y/N] ")
	ok, err := readConfirmFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	return ok, err
}
