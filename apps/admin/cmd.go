package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core/course"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db        *sqlx.DB
	courseSvc *course.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate up|down|redo|status|version [ARGS] - run database migrations")
	fmt.Println("  seedcourses -file PATH                     - load courses from a JSON catalog file")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCoursesCmd := flag.NewFlagSet("seedcourses", flag.ExitOnError)
	seedCoursesFile := seedCoursesCmd.String("file", "", "Path to a JSON file holding an array of courses.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seedcourses":
		if err := seedCoursesCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedCoursesFile == "" {
			seedCoursesCmd.Usage()
			return errHelp
		}
		return cli.seedCourses(*seedCoursesFile)
	default:
		cli.printUsage()
		return errHelp
	}
}
