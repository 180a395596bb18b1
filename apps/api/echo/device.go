package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core/device"
)

type deviceApi struct {
	svc      *device.Service
	validate *validator.Validate
}

func registerDeviceAPI(g *echo.Group, svc *device.Service, validate *validator.Validate) {
	api := deviceApi{svc: svc, validate: validate}

	// un-authed: the admin app registers its push token before any operator logs in
	g.POST("/devices", api.register)
}

// Handlers

func (api *deviceApi) register(ctx echo.Context) error {
	var data device.NewToken
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewToken")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tok, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering device token")
	}
	return ctx.JSON(http.StatusCreated, tok)
}
