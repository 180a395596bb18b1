package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/operator"
)

type operatorApi struct {
	conf     *core.Config
	svc      *operator.Service
	validate *validator.Validate
}

func registerOperatorAPI(g *echo.Group, jwt echo.MiddlewareFunc, conf *core.Config, svc *operator.Service, validate *validator.Validate) {
	api := operatorApi{conf: conf, svc: svc, validate: validate}

	og := g.Group("/operators")

	// un-authed endpoints
	og.POST("/login", api.login)

	// authed endpoints
	ag := og.Group("", jwt)
	ag.POST("/token-refresh", api.tokenRefresh)
	ag.GET("/current", api.current)
}

// Handlers

func (api *operatorApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	claims, err := authenticate(ctx, api.conf, data.Email, data.Password, api.svc)
	if err != nil {
		return err
	}
	token, err := GenerateToken(api.conf, claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *operatorApi) tokenRefresh(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.conf, api.svc)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *operatorApi) current(ctx echo.Context) error {
	op, err := getContextOperator(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context operator")
	}
	return ctx.JSON(http.StatusOK, op)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)
