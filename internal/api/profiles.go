package api

import (
	"encoding/json"
	"net/http"

	"github.com/malezi/malezi/internal/profiles"
)

const maxAvatarBytes = 5 << 20 // 5 MB

// ProfileHandler holds the caller's profile routes.
type ProfileHandler struct {
	svc *profiles.Service
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *profiles.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// GetProfile handles GET /api/profile.
//
//	@Summary		Get the caller's profile
//	@Tags			profile
//	@Produce		json
//	@Success		200	{object}	models.Profile
//	@Failure		401	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context())
	if err != nil {
		writeError(w, "get profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProfile handles PUT /api/profile.
//
//	@Summary		Update the caller's display name and bio
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			body	body		UpdateProfileRequest	true	"Fields to update"
//	@Success		200		{object}	models.Profile
//	@Failure		400		{object}	errResponse
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/profile [put]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	p, err := h.svc.Update(r.Context(), req.FullName, req.Bio)
	if err != nil {
		writeError(w, "update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UploadAvatar handles POST /api/profile/avatar (multipart, field "file").
//
//	@Summary		Upload the caller's avatar
//	@Tags			profile
//	@Accept			mpfd
//	@Produce		json
//	@Success		200	{object}	AvatarResponse
//	@Failure		400	{object}	errResponse
//	@Failure		401	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	url, err := h.svc.UpdateAvatar(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, "upload avatar", err)
		return
	}
	writeJSON(w, http.StatusOK, AvatarResponse{AvatarURL: url})
}
