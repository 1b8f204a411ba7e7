package book

import (
	"errors"
	"log/slog"
	"net/http"

	"bookly/internal/httpx"

	"github.com/google/uuid"
)

// BasePath is the prefix every book route is mounted under.
const BasePath = "/api/v1/books"

type HTTPHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewHTTPHandler(service *Service, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

// RegisterRoutes mounts the book endpoints on mux.
func RegisterRoutes(mux *http.ServeMux, h *HTTPHandler) {
	mux.HandleFunc("GET "+BasePath, h.List)
	mux.HandleFunc("GET "+BasePath+"/{$}", h.List)
	mux.HandleFunc("POST "+BasePath, h.Create)
	mux.HandleFunc("POST "+BasePath+"/{$}", h.Create)
	mux.HandleFunc("GET "+BasePath+"/{uid}", h.Get)
	mux.HandleFunc("PATCH "+BasePath+"/{uid}", h.Update)
	mux.HandleFunc("DELETE "+BasePath+"/{uid}", h.Delete)
}

// @Summary List books
// @Description All books, newest first
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Router /api/v1/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.internalError(w, r, "list books", err)
		return
	}
	httpx.JSONSuccess(w, books)
}

// @Summary Create book
// @Tags books
// @Accept json
// @Produce json
// @Param book body CreateInput true "Book"
// @Success 201 {object} Book
// @Failure 422 {object} httpx.ErrorResponse
// @Router /api/v1/books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteDecodeError(w, r, err)
		return
	}

	b, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.internalError(w, r, "create book", err)
		return
	}
	httpx.JSONSuccessCreated(w, b)
}

// @Summary Get book by uid
// @Tags books
// @Produce json
// @Param uid path string true "Book uid"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/v1/books/{uid} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.pathUID(w, r)
	if !ok {
		return
	}

	b, err := h.service.Get(r.Context(), uid)
	if err != nil {
		h.serviceError(w, r, "get book", err)
		return
	}
	httpx.JSONSuccess(w, b)
}

// @Summary Update book
// @Description Only the fields present in the body are changed
// @Tags books
// @Accept json
// @Produce json
// @Param uid path string true "Book uid"
// @Param book body UpdateInput true "Fields to change"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/v1/books/{uid} [patch]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.pathUID(w, r)
	if !ok {
		return
	}

	var in UpdateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteDecodeError(w, r, err)
		return
	}

	b, err := h.service.Update(r.Context(), uid, in)
	if err != nil {
		h.serviceError(w, r, "update book", err)
		return
	}
	httpx.JSONSuccess(w, b)
}

// @Summary Delete book
// @Tags books
// @Param uid path string true "Book uid"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/v1/books/{uid} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.pathUID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), uid); err != nil {
		h.serviceError(w, r, "delete book", err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) pathUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	uid, err := uuid.Parse(r.PathValue("uid"))
	if err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusUnprocessableEntity, httpx.CodeInvalidUID, "uid must be a valid UUID", nil)
		return uuid.Nil, false
	}
	return uid, true
}

func (h *HTTPHandler) serviceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, httpx.CodeNotFound, "Book not found", nil)
		return
	}
	h.internalError(w, r, op, err)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.ErrorContext(r.Context(), op+" failed",
		"request_id", httpx.RequestIDFrom(r),
		"error", err,
	)
	httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, httpx.CodeInternal, "Internal server error", nil)
}
