// Package inmemdb provides in-memory repositories used in tests.
package inmemdb

import (
	"sync"

	"github.com/trezcool/adxsetup/core/course"
	"github.com/trezcool/adxsetup/core/device"
	"github.com/trezcool/adxsetup/core/operator"
	"github.com/trezcool/adxsetup/core/submission"
)

type DB struct {
	mutex sync.RWMutex

	submissions map[string]*submission.Submission
	courses     map[string]*course.Course
	tokens      map[string]*device.Token
	operators   map[string]*operator.Operator

	// insertion order, so listings are deterministic
	submissionIDs []string
	courseIDs     []string
	tokenIDs      []string
}

func Open() *DB {
	return &DB{
		submissions: make(map[string]*submission.Submission),
		courses:     make(map[string]*course.Course),
		tokens:      make(map[string]*device.Token),
		operators:   make(map[string]*operator.Operator),
	}
}

// Reset drops all stored records; operators survive so tests keep their
// authenticated session across resets.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	db.submissions = make(map[string]*submission.Submission)
	db.courses = make(map[string]*course.Course)
	db.tokens = make(map[string]*device.Token)
	db.submissionIDs = nil
	db.courseIDs = nil
	db.tokenIDs = nil
}
