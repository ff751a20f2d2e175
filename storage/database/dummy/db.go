package dummydb

import (
	"sync"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/revision"
	"github.com/trezcool/darasa/core/track"
	"github.com/trezcool/darasa/core/user"
)

// DB is an in-memory store backing the dummy repositories used in tests.
type (
	DB struct {
		user     *userTable
		course   *courseTable
		track    *trackTable
		revision *revisionTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	courseTable struct {
		sync.RWMutex
		table     map[string]*course.Course
		purchases map[string]*course.Purchase
	}

	trackTable struct {
		sync.RWMutex
		table map[string]*track.TopicPerformance
	}

	revisionTable struct {
		sync.RWMutex
		schedules map[string]*revision.Schedule
		sessions  map[string]*revision.Session
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:   &userTable{table: make(map[string]*user.User)},
		course: &courseTable{table: make(map[string]*course.Course), purchases: make(map[string]*course.Purchase)},
		track:  &trackTable{table: make(map[string]*track.TopicPerformance)},
		revision: &revisionTable{
			schedules: make(map[string]*revision.Schedule),
			sessions:  make(map[string]*revision.Session),
		},
	}
	return db, nil
}
