package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/adxsetup/core/device"
)

type deviceRepository struct {
	db *DB
}

var _ device.Repository = (*deviceRepository)(nil)

func NewDeviceRepository(db *DB) *deviceRepository {
	return &deviceRepository{db: db}
}

func (repo *deviceRepository) CreateDeviceToken(_ context.Context, tok device.Token) (device.Token, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	tok.ID = uuid.New().String()
	repo.db.tokens[tok.ID] = &tok
	repo.db.tokenIDs = append(repo.db.tokenIDs, tok.ID)
	return tok, nil
}

func (repo *deviceRepository) QueryAllDeviceTokens(_ context.Context) ([]device.Token, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	toks := make([]device.Token, 0, len(repo.db.tokenIDs))
	for _, id := range repo.db.tokenIDs {
		if tok, ok := repo.db.tokens[id]; ok {
			toks = append(toks, *tok)
		}
	}
	return toks, nil
}
