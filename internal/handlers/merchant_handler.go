package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	ucMerchant "github.com/BruksfildServices01/salon-booking/internal/usecase/merchant"
)

const maxCoverBytes = 10 << 20

type MerchantHandler struct {
	apply   *ucMerchant.Apply
	catalog *ucMerchant.Catalog
	cover   *ucMerchant.UploadCover

	users     domain.UserRepository
	jwtSecret string
}

func NewMerchantHandler(
	apply *ucMerchant.Apply,
	catalog *ucMerchant.Catalog,
	cover *ucMerchant.UploadCover,
	users domain.UserRepository,
	jwtSecret string,
) *MerchantHandler {
	return &MerchantHandler{
		apply:     apply,
		catalog:   catalog,
		cover:     cover,
		users:     users,
		jwtSecret: jwtSecret,
	}
}

type SetWorkerActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// --------------------------------------------------
// Application
// --------------------------------------------------

// Apply files the application and returns a token carrying the new merchant
// role so the caller does not have to log in again.
func (h *MerchantHandler) Apply(c *gin.Context) {
	var req ucMerchant.ApplyInput
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	session := middleware.Session(c)

	m, err := h.apply.Execute(ctx, session, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	user, err := h.users.GetUser(ctx, session.UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"merchant": m,
		"token":    token,
	})
}

// --------------------------------------------------
// Workers
// --------------------------------------------------

func (h *MerchantHandler) ListWorkers(c *gin.Context) {
	workers, err := h.catalog.ListWorkers(c.Request.Context(), middleware.Session(c).MerchantID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, workers)
}

func (h *MerchantHandler) AddWorker(c *gin.Context) {
	var req ucMerchant.WorkerInput
	if !bindJSON(c, &req) {
		return
	}

	w, err := h.catalog.AddWorker(c.Request.Context(), middleware.Session(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, w)
}

func (h *MerchantHandler) SetWorkerActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req SetWorkerActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	w, err := h.catalog.SetWorkerActive(c.Request.Context(), middleware.Session(c), id, *req.Active)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, w)
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (h *MerchantHandler) ListServices(c *gin.Context) {
	services, err := h.catalog.ListServices(c.Request.Context(), middleware.Session(c).MerchantID, false)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *MerchantHandler) AddService(c *gin.Context) {
	var req ucMerchant.ServiceInput
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.catalog.AddService(c.Request.Context(), middleware.Session(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *MerchantHandler) UpdateService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ucMerchant.ServiceUpdate
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.catalog.UpdateService(c.Request.Context(), middleware.Session(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, s)
}

// --------------------------------------------------
// Cover
// --------------------------------------------------

// UploadCover takes a multipart "image" field or the raw request body.
func (h *MerchantHandler) UploadCover(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxCoverBytes)

	var body io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("image")
		if err != nil {
			httperr.BadRequest(c, "missing_image", "Image file is required.")
			return
		}
		f, err := fh.Open()
		if err != nil {
			httperr.BadRequest(c, "invalid_image", "Image could not be read.")
			return
		}
		defer f.Close()
		body = f
	}

	session := middleware.Session(c)
	m, err := h.cover.Execute(c.Request.Context(), session, session.MerchantID, body)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, m)
}
