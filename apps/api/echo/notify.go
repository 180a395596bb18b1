package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/device"
)

type notifyApi struct {
	deviceSvc *device.Service
	pushSvc   core.PushService
	validate  *validator.Validate
}

func registerNotifyAPI(g *echo.Group, jwt echo.MiddlewareFunc, deviceSvc *device.Service, pushSvc core.PushService, validate *validator.Validate) {
	api := notifyApi{deviceSvc: deviceSvc, pushSvc: pushSvc, validate: validate}

	g.POST("/notify", api.broadcast, jwt, adminMiddleware())
}

// Handlers

func (api *notifyApi) broadcast(ctx echo.Context) error {
	var data BroadcastRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BroadcastRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	tokens, err := api.deviceSvc.QueryTokens(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying device tokens")
	}
	if len(tokens) == 0 {
		return ctx.JSON(http.StatusOK, BroadcastResponse{
			Message: "No devices registered for notifications",
		})
	}

	results := api.pushSvc.Send(ctx.Request().Context(), core.PushMessage{
		Title:  data.Title,
		Body:   data.Body,
		Tokens: tokens,
	})

	res := BroadcastResponse{Message: "Notification sent"}
	for _, r := range results {
		if r.Err == nil {
			res.Delivered++
		} else {
			res.Failed++
		}
	}
	return ctx.JSON(http.StatusOK, res)
}

type (
	BroadcastRequest struct {
		Title string `json:"title" validate:"required"`
		Body  string `json:"body" validate:"required"`
	}

	BroadcastResponse struct {
		Message   string `json:"message"`
		Delivered int    `json:"delivered,omitempty"`
		Failed    int    `json:"failed,omitempty"`
	}
)
