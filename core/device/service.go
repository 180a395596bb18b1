package device

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type (
	Repository interface {
		CreateDeviceToken(ctx context.Context, tok Token) (Token, error)
		QueryAllDeviceTokens(ctx context.Context) ([]Token, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Register(ctx context.Context, nt NewToken) (Token, error) {
	tok := Token{
		Token:     nt.Token,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateDeviceToken(ctx, tok)
}

// QueryTokens returns the raw token strings of every registered device.
func (svc *Service) QueryTokens(ctx context.Context) ([]string, error) {
	toks, err := svc.repo.QueryAllDeviceTokens(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying device tokens")
	}
	tokens := make([]string, 0, len(toks))
	for _, t := range toks {
		tokens = append(tokens, t.Token)
	}
	return tokens, nil
}
