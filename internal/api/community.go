package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/malezi/malezi/internal/community"
)

// CommunityHandler holds the discussion hierarchy routes.
type CommunityHandler struct {
	svc *community.Service
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(svc *community.Service) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

// ListChannels handles GET /api/channels.
//
//	@Summary		List channels, oldest first
//	@Tags			community
//	@Produce		json
//	@Success		200	{object}	ChannelListResponse
//	@Router			/channels [get]
func (h *CommunityHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.svc.ListChannels(r.Context())
	if err != nil {
		writeError(w, "list channels", err)
		return
	}
	writeJSON(w, http.StatusOK, ChannelListResponse{Channels: channels})
}

// CreateChannel handles POST /api/channels.
//
//	@Summary		Create a channel
//	@Tags			community
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateChannelRequest	true	"Channel to create"
//	@Success		201		{object}	models.Channel
//	@Failure		400		{object}	errResponse
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/channels [post]
func (h *CommunityHandler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	var req CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	ch, err := h.svc.CreateChannel(r.Context(), req.Name, req.Description, req.Color, req.IsPublic)
	if err != nil {
		writeError(w, "create channel", err)
		return
	}
	writeJSON(w, http.StatusCreated, ch)
}

// DeleteChannel handles DELETE /api/channels/{id}.
//
//	@Summary		Delete a channel and its topics (admin only)
//	@Tags			community
//	@Produce		json
//	@Param			id	path	string	true	"Channel id"
//	@Success		204
//	@Failure		403	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/channels/{id} [delete]
func (h *CommunityHandler) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteChannel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete channel", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTopics handles GET /api/channels/{id}/topics.
//
//	@Summary		List a channel's topics, newest first
//	@Tags			community
//	@Produce		json
//	@Param			id	path		string	true	"Channel id"
//	@Success		200	{object}	TopicListResponse
//	@Router			/channels/{id}/topics [get]
func (h *CommunityHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.svc.ListTopics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "list topics", err)
		return
	}
	writeJSON(w, http.StatusOK, TopicListResponse{Topics: topics})
}

// CreateTopic handles POST /api/channels/{id}/topics.
//
//	@Summary		Start a topic in a channel
//	@Tags			community
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Channel id"
//	@Param			body	body		CreateTopicRequest	true	"Topic to create"
//	@Success		201		{object}	models.Topic
//	@Failure		400		{object}	errResponse
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/channels/{id}/topics [post]
func (h *CommunityHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req CreateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	tp, err := h.svc.CreateTopic(r.Context(), chi.URLParam(r, "id"), req.Title, req.Description)
	if err != nil {
		writeError(w, "create topic", err)
		return
	}
	writeJSON(w, http.StatusCreated, tp)
}

// ListPosts handles GET /api/topics/{id}/posts.
//
//	@Summary		List a topic's posts in creation order
//	@Tags			community
//	@Produce		json
//	@Param			id	path		string	true	"Topic id"
//	@Success		200	{object}	PostListResponse
//	@Router			/topics/{id}/posts [get]
func (h *CommunityHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "list posts", err)
		return
	}
	writeJSON(w, http.StatusOK, PostListResponse{Posts: posts})
}

// CreatePost handles POST /api/topics/{id}/posts.
//
//	@Summary		Append a message to a topic
//	@Tags			community
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Topic id"
//	@Param			body	body		CreatePostRequest	true	"Message to post"
//	@Success		201		{object}	models.Post
//	@Failure		400		{object}	errResponse
//	@Failure		401		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/topics/{id}/posts [post]
func (h *CommunityHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	p, err := h.svc.CreatePost(r.Context(), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeError(w, "create post", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}
