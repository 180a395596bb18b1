package device

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/adxsetup/core"
)

// Token is a push-notification device registration. Created once per browser
// permission grant; never updated, never expired.
type Token struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewToken contains information needed to register a device.
type NewToken struct {
	Token string `json:"token" validate:"required"`
}

func (nt *NewToken) Validate(validate *validator.Validate) error {
	nt.Token = core.CleanString(nt.Token)
	return validate.Struct(nt)
}
