package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/adxsetup/core/submission"
)

type submissionRepository struct {
	db *DB
}

var _ submission.Repository = (*submissionRepository)(nil)

func NewSubmissionRepository(db *DB) *submissionRepository {
	return &submissionRepository{db: db}
}

func (repo *submissionRepository) CreateSubmission(_ context.Context, sub submission.Submission) (submission.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sub.ID = uuid.New().String()
	repo.db.submissions[sub.ID] = &sub
	repo.db.submissionIDs = append(repo.db.submissionIDs, sub.ID)
	return sub, nil
}

func (repo *submissionRepository) QueryAllSubmissions(_ context.Context) ([]submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subs := make([]submission.Submission, 0, len(repo.db.submissionIDs))
	for _, id := range repo.db.submissionIDs {
		if sub, ok := repo.db.submissions[id]; ok {
			subs = append(subs, *sub)
		}
	}
	return subs, nil
}

func (repo *submissionRepository) GetSubmissionByID(_ context.Context, id string) (submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sub, ok := repo.db.submissions[id]; ok {
		return *sub, nil
	}
	return submission.Submission{}, submission.ErrNotFound
}

func (repo *submissionRepository) UpdateSubmissionStatus(_ context.Context, id string, status submission.Status) (submission.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	sub, ok := repo.db.submissions[id]
	if !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	sub.Status = status
	return *sub, nil
}

func (repo *submissionRepository) DeleteSubmissionsByID(_ context.Context, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		delete(repo.db.submissions, id)
	}
	remaining := repo.db.submissionIDs[:0]
	for _, id := range repo.db.submissionIDs {
		if _, ok := repo.db.submissions[id]; ok {
			remaining = append(remaining, id)
		}
	}
	repo.db.submissionIDs = remaining
	return nil
}
