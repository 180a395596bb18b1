package operator

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/adxsetup/core"
)

// Operator is an admin account allowed to review submissions and manage the
// course catalog. All admin endpoints require an authenticated operator.
type Operator struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (op *Operator) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	op.PasswordHash = hash
	return nil
}

func (op *Operator) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(op.PasswordHash, []byte(pwd))
}

// NewOperator contains information needed to create a new Operator.
type NewOperator struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (no *NewOperator) Validate(validate *validator.Validate, svc *Service) error {
	no.Email = core.CleanString(no.Email, true /* lower */)
	if err := validate.Struct(no); err != nil {
		return err
	}
	return svc.checkUniqueness(no.Email)
}
