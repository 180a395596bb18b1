package operator

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core"
)

var (
	ErrNotFound    = errors.New("operator not found")
	ErrEmailExists = errors.New("an operator with this email already exists")
)

type (
	Repository interface {
		CreateOperator(ctx context.Context, op Operator) (Operator, error)
		GetOperatorByID(ctx context.Context, id string) (Operator, error)
		GetOperatorByEmail(ctx context.Context, email string) (Operator, error)
		UpdateOperator(ctx context.Context, op Operator) (Operator, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(email string) error {
	if _, err := svc.repo.GetOperatorByEmail(context.Background(), email); err == nil {
		return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	} else if errors.Cause(err) != ErrNotFound {
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, no NewOperator) (Operator, error) {
	op := Operator{
		Email:     no.Email,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := op.SetPassword(no.Password); err != nil {
		return Operator{}, err
	}
	return svc.repo.CreateOperator(ctx, op)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Operator, error) {
	return svc.repo.GetOperatorByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Operator, error) {
	return svc.repo.GetOperatorByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) Update(ctx context.Context, op Operator) (Operator, error) {
	return svc.repo.UpdateOperator(ctx, op)
}

func (svc *Service) SetLastLogin(ctx context.Context, op Operator) (Operator, error) {
	op.LastLogin = time.Now().UTC()
	return svc.repo.UpdateOperator(ctx, op)
}

// ResetPassword replaces the password of the operator with the given email.
func (svc *Service) ResetPassword(ctx context.Context, email, pwd string) error {
	op, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := op.SetPassword(pwd); err != nil {
		return err
	}
	_, err = svc.repo.UpdateOperator(ctx, op)
	return err
}
