package api

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/gateway"
	"github.com/malezi/malezi/internal/identity"
)

// AdminHandler holds the admin dashboard routes.
type AdminHandler struct {
	gw gateway.Gateway
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(gw gateway.Gateway) *AdminHandler {
	return &AdminHandler{gw: gw}
}

// Stats handles GET /api/admin/stats. The four table counts are fetched
// concurrently.
//
//	@Summary		Row counts for the admin dashboard
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	StatsResponse
//	@Failure		403	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	caller := identity.FromContext(r.Context())
	if !caller.IsAuthenticated() {
		writeError(w, "admin stats", apperr.ErrAuthRequired)
		return
	}
	if !caller.IsAdmin() {
		writeError(w, "admin stats", apperr.ErrForbidden)
		return
	}

	var stats StatsResponse
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		stats.Channels, err = h.gw.CountChannels(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Profiles, err = h.gw.CountProfiles(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Resources, err = h.gw.CountResources(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Events, err = h.gw.CountEvents(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, "admin stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
