package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/malezi/malezi/internal/models"
	"github.com/malezi/malezi/internal/resources"
)

const maxResourceUploadBytes = 50 << 20 // 50 MB

// ResourceHandler holds the resource library routes.
type ResourceHandler struct {
	svc *resources.Service
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(svc *resources.Service) *ResourceHandler {
	return &ResourceHandler{svc: svc}
}

// ListResources handles GET /api/resources.
//
//	@Summary		List resources, optionally filtered by term and category
//	@Tags			resources
//	@Produce		json
//	@Param			term		query		string	false	"Search term"
//	@Param			category	query		string	false	"Category, or all"
//	@Success		200			{object}	ResourceListResponse
//	@Router			/resources [get]
func (h *ResourceHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.Search(r.Context(), q.Get("term"), q.Get("category"))
	if err != nil {
		writeError(w, "list resources", err)
		return
	}
	writeJSON(w, http.StatusOK, ResourceListResponse{Resources: items})
}

// CreateResource handles POST /api/resources. Multipart form uploads carry
// the file in the "file" field; link resources may be posted as JSON.
//
//	@Summary		Create a resource (admin only)
//	@Tags			resources
//	@Accept			mpfd
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	models.Resource
//	@Failure		400	{object}	errResponse
//	@Failure		403	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/resources [post]
func (h *ResourceHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var in resources.CreateInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		r.Body = http.MaxBytesReader(w, r.Body, maxResourceUploadBytes)
		if err := r.ParseMultipartForm(maxResourceUploadBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
			return
		}
		in = multipartCreateInput(r)
		file, header, err := r.FormFile("file")
		switch {
		case err == nil:
			defer file.Close()
			in.File = file
			in.FileName = header.Filename
		case errors.Is(err, http.ErrMissingFile):
			// Link resources legitimately omit the file field.
		default:
			writeJSON(w, http.StatusBadRequest, errorBody("invalid 'file' field"))
			return
		}
	} else {
		var req CreateResourceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
			return
		}
		in = resources.CreateInput{
			Title:       req.Title,
			Description: req.Description,
			FileType:    models.FileType(req.FileType),
			Category:    models.Category(req.Category),
			Tags:        req.Tags,
			IsFeatured:  req.IsFeatured,
			FileURL:     req.FileURL,
		}
	}

	created, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, "create resource", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// RecordDownload handles POST /api/resources/{id}/download.
//
//	@Summary		Record a download and return the resource
//	@Tags			resources
//	@Produce		json
//	@Param			id	path		string	true	"Resource id"
//	@Success		200	{object}	models.Resource
//	@Failure		404	{object}	errResponse
//	@Router			/resources/{id}/download [post]
func (h *ResourceHandler) RecordDownload(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.RecordDownload(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "record download", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// multipartCreateInput reads the scalar resource fields from a parsed
// multipart form. Tags are deduplicated in submission order.
func multipartCreateInput(r *http.Request) resources.CreateInput {
	featured, _ := strconv.ParseBool(r.FormValue("is_featured"))
	var tags resources.TagSet
	for _, tag := range r.Form["tags"] {
		tags.Add(strings.TrimSpace(tag))
	}
	return resources.CreateInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		FileType:    models.FileType(r.FormValue("file_type")),
		Category:    models.Category(r.FormValue("category")),
		Tags:        tags.Tags(),
		IsFeatured:  featured,
		FileURL:     r.FormValue("file_url"),
	}
}
