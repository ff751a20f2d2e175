package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/course"
)

// seedCourses loads the course catalog from a JSON file and inserts every
// entry. Existing courses are not deduplicated; seeding is meant for fresh
// environments.
func (cli *commandLine) seedCourses(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading catalog file")
	}

	var courses []course.Course
	if err = json.Unmarshal(raw, &courses); err != nil {
		return errors.Wrap(err, "parsing catalog file")
	}

	ctx := context.Background()
	for _, crs := range courses {
		if _, err = cli.courseSvc.Create(ctx, crs); err != nil {
			return errors.Wrapf(err, "inserting course %q", crs.Title)
		}
	}
	logger.Printf("seeded %d courses\n", len(courses))
	return nil
}
