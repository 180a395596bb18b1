package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/adxsetup/core/operator"
)

type operatorRepository struct {
	db *DB
}

var _ operator.Repository = (*operatorRepository)(nil)

func NewOperatorRepository(db *DB) *operatorRepository {
	return &operatorRepository{db: db}
}

func (repo *operatorRepository) CreateOperator(_ context.Context, op operator.Operator) (operator.Operator, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	op.ID = uuid.New().String()
	repo.db.operators[op.ID] = &op
	return op, nil
}

func (repo *operatorRepository) GetOperatorByID(_ context.Context, id string) (operator.Operator, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if op, ok := repo.db.operators[id]; ok {
		return *op, nil
	}
	return operator.Operator{}, operator.ErrNotFound
}

func (repo *operatorRepository) GetOperatorByEmail(_ context.Context, email string) (operator.Operator, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, op := range repo.db.operators {
		if op.Email == email {
			return *op, nil
		}
	}
	return operator.Operator{}, operator.ErrNotFound
}

func (repo *operatorRepository) UpdateOperator(_ context.Context, op operator.Operator) (operator.Operator, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.operators[op.ID]; !ok {
		return operator.Operator{}, operator.ErrNotFound
	}
	repo.db.operators[op.ID] = &op
	return op, nil
}
