package echoapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/submission"
)

type submissionApi struct {
	svc      *submission.Service
	validate *validator.Validate
}

func registerSubmissionAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *submission.Service, validate *validator.Validate) {
	api := submissionApi{svc: svc, validate: validate}

	sg := g.Group("/submissions")

	// un-authed endpoint: the public intake form
	sg.POST("", api.create)

	// authed admin endpoints; per-route middleware so the public route
	// above keeps the "/submissions" path to itself
	admin := []echo.MiddlewareFunc{jwt, adminMiddleware()}
	sg.GET("", api.query, admin...)
	sg.GET("/:id", api.retrieve, admin...)
	sg.PATCH("/:id/status", api.updateStatus, admin...)
	sg.DELETE("/:id", api.destroy, admin...)
}

// Handlers

func (api *submissionApi) create(ctx echo.Context) error {
	var data submission.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err := api.bindReceipt(ctx, &data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating submission")
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: sub.ID})
}

// bindReceipt populates the receipt fields from the multipart "receipt" part.
// A missing part is not an error here; Validate reports it as a field error so
// the client can surface it inline.
func (api *submissionApi) bindReceipt(ctx echo.Context, data *submission.NewSubmission) error {
	fh, err := ctx.FormFile("receipt")
	if err != nil {
		if err == http.ErrMissingFile || errors.Cause(err) == http.ErrMissingFile {
			return nil
		}
		if herr, ok := err.(*echo.HTTPError); ok && herr.Code == http.StatusBadRequest {
			return nil
		}
		return errors.Wrap(err, "reading receipt part")
	}

	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening receipt part")
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return errors.Wrap(err, "reading receipt content")
	}

	data.ReceiptName = fh.Filename
	data.ReceiptType = fh.Header.Get("Content-Type")
	data.ReceiptData = content
	return nil
}

func (api *submissionApi) query(ctx echo.Context) error {
	subs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}

	page := 1
	if p, err := strconv.Atoi(ctx.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	start, end := core.PageBounds(len(subs), page)

	return ctx.JSON(http.StatusOK, SubmissionPageResponse{
		Results:   subs[start:end],
		Page:      page,
		PageCount: core.PageCount(len(subs)),
		Total:     len(subs),
	})
}

func (api *submissionApi) retrieve(ctx echo.Context) error {
	sub, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == submission.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *submissionApi) updateStatus(ctx echo.Context) error {
	var data submission.UpdateSubmissionStatus
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubmissionStatus")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.UpdateStatus(ctx.Request().Context(), ctx.Param("id"), data.Status)
	if err != nil {
		if errors.Cause(err) == submission.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating submission status")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *submissionApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting submission")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	CreatedResponse struct {
		ID string `json:"id"`
	}

	SubmissionPageResponse struct {
		Results   []submission.Submission `json:"results"`
		Page      int                     `json:"page"`
		PageCount int                     `json:"page_count"`
		Total     int                     `json:"total"`
	}
)
