package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	apperrors "github.com/target/mmk-usersession/internal/errors"
)

// ProfileService is the subset of service.ProfileService the handlers need.
type ProfileService interface {
	Me(ctx context.Context, userID string, fields []string) (domainuser.Record, error)
	ShareProfile(share, roleID string, fields []string) (domainuser.Record, error)
	TrackPage(ctx context.Context, userID, lastPage string) error
}

// UserHandlers serves the /users/me endpoints.
type UserHandlers struct {
	Svc         ProfileService
	ShareRoleID string
	Logger      *slog.Logger
}

// Me handles GET /users/me?fields=a,b.
func (h *UserHandlers) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, apperrors.Unauthorized("authentication required"))
		return
	}
	fields := parseFields(r)

	var (
		rec domainuser.Record
		err error
	)
	if p.IsShare() {
		rec, err = h.Svc.ShareProfile(p.Share, h.ShareRoleID, fields)
	} else {
		rec, err = h.Svc.Me(r.Context(), p.UserID, fields)
	}
	if err != nil {
		h.logError(r, "get current user", err)
		WriteError(w, err)
		return
	}
	WriteData(w, rec)
}

type trackPageRequest struct {
	LastPage string `json:"last_page"`
}

// TrackPage handles PATCH /users/me/track/page.
func (h *UserHandlers) TrackPage(w http.ResponseWriter, r *http.Request) {
	p, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, apperrors.Unauthorized("authentication required"))
		return
	}
	var req trackPageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	// Share sessions have no profile to write to.
	if p.IsShare() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := h.Svc.TrackPage(r.Context(), p.UserID, req.LastPage); err != nil {
		h.logError(r, "track page", err)
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandlers) logError(r *http.Request, msg string, err error) {
	if h.Logger == nil || apperrors.GetCode(err) == apperrors.ErrCodeValidation {
		return
	}
	h.Logger.WarnContext(r.Context(), msg, "error", err, "path", r.URL.Path)
}

// parseFields accepts both ?fields=a,b and repeated fields[]=a&fields[]=b.
func parseFields(r *http.Request) []string {
	q := r.URL.Query()
	raw := make([]string, 0, len(q["fields"])+len(q["fields[]"]))
	raw = append(raw, q["fields"]...)
	raw = append(raw, q["fields[]"]...)
	var out []string
	for _, v := range raw {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				out = append(out, f)
			}
		}
	}
	return out
}
