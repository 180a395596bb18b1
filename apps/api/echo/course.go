package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/course"
)

type courseApi struct {
	svc      *course.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *course.Service, validate *validator.Validate) {
	api := courseApi{svc: svc, validate: validate}

	cg := g.Group("/courses")

	// un-authed endpoint: the public catalog
	cg.GET("", api.queryPublic)

	// authed admin endpoints; per-route middleware so the public route
	// above keeps the "/courses" path to itself
	admin := []echo.MiddlewareFunc{jwt, adminMiddleware()}
	cg.POST("", api.create, admin...)
	cg.PUT("/:id", api.replace, admin...)
	cg.DELETE("/:id", api.destroy, admin...)
}

// Handlers

func (api *courseApi) queryPublic(ctx echo.Context) error {
	courses := api.svc.QueryPublic(ctx.Request().Context())

	res := make([]PublicCourseResponse, len(courses))
	for i, c := range courses {
		res[i] = PublicCourseResponse{Course: c}
		if c.WhatsappNumber != "" {
			res[i].WhatsappLink = core.WhatsAppLink(c.WhatsappNumber, core.CourseInquiryMessage(c.Title))
		}
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	crs, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) replace(ctx echo.Context) error {
	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	crs, err := api.svc.Replace(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "replacing course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PublicCourseResponse decorates a catalog entry with its WhatsApp contact link.
type PublicCourseResponse struct {
	course.Course
	WhatsappLink string `json:"whatsapp_link,omitempty"`
}
