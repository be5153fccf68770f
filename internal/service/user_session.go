package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	"github.com/target/mmk-usersession/internal/observability/statsd"
	"github.com/target/mmk-usersession/internal/ports"
)

// previewSuffix marks full-screen live-preview routes. A fresh login would
// otherwise resume onto a preview with no way to navigate out.
const previewSuffix = "/preview"

const (
	metricSessionLoad    = "session.load"
	metricSessionRefresh = "session.refresh"
	metricSessionTrack   = "session.track_page"
)

// UserSessionOptions groups dependencies for UserSession.
type UserSessionOptions struct {
	API        ports.UserAPI
	Roles      ports.RoleMapper
	FormatName ports.NameFormatter
	Metrics    statsd.Sink
	Logger     *slog.Logger
}

// UserSession caches the signed-in user's profile for the lifetime of a session
// and derives role flags from it. It is safe for concurrent use; the lock is
// never held across API calls.
type UserSession struct {
	api        ports.UserAPI
	roles      ports.RoleMapper
	formatName ports.NameFormatter
	metrics    statsd.Sink
	logger     *slog.Logger

	mu       sync.RWMutex
	current  domainuser.CurrentUser
	inflight int
	err      error
	// epoch is bumped by Clear; responses that started in an older epoch are dropped.
	epoch uint64
}

// SessionState is a point-in-time copy of the session.
type SessionState struct {
	CurrentUser domainuser.CurrentUser
	Loading     bool
	Err         error
}

type noRoles struct{}

func (noRoles) Map(string) domainuser.RoleKind { return domainuser.RoleKindNone }

// NewUserSession constructs an empty session.
func NewUserSession(opts UserSessionOptions) (*UserSession, error) {
	if opts.API == nil {
		return nil, errors.New("user API is required")
	}
	s := &UserSession{
		api:        opts.API,
		roles:      opts.Roles,
		formatName: opts.FormatName,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
	}
	if s.roles == nil {
		s.roles = noRoles{}
	}
	if s.formatName == nil {
		s.formatName = domainuser.DisplayName
	}
	if s.metrics == nil {
		s.metrics = statsd.Nop{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Load fetches the full profile and replaces the cached user with it.
// A failure is captured in Err rather than returned. Loading is always
// resolved once the call finishes.
func (s *UserSession) Load(ctx context.Context) {
	s.mu.Lock()
	s.inflight++
	epoch := s.epoch
	s.mu.Unlock()

	rec, err := s.api.GetCurrentUser(ctx, domainuser.DefaultFields())

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		s.logger.DebugContext(ctx, "discarding user load from cleared session")
		return
	}
	s.inflight--
	if err != nil {
		s.err = err
		s.metrics.Count(metricSessionLoad, 1, map[string]string{"result": "error"})
		s.logger.WarnContext(ctx, "load current user failed", "error", err)
		return
	}
	s.current = domainuser.Decode(rec)
	s.metrics.Count(metricSessionLoad, 1, map[string]string{"result": "success"})
}

// Clear resets the session to its initial state. Loads and refreshes still in
// flight will not write into the cleared session.
func (s *UserSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.inflight = 0
	s.err = nil
	s.epoch++
}

// RefreshFields fetches additional fields and deep-merges them into the cached
// user. It is best effort: failures are logged and otherwise ignored.
func (s *UserSession) RefreshFields(ctx context.Context, fields []string) {
	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	rec, err := s.api.GetCurrentUser(ctx, fields)
	if err != nil {
		s.metrics.Count(metricSessionRefresh, 1, map[string]string{"result": "discarded"})
		s.logger.DebugContext(ctx, "refresh user fields failed", "fields", fields, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	s.current = domainuser.Decode(domainuser.Merge(domainuser.ToRecord(s.current), rec))
	s.metrics.Count(metricSessionRefresh, 1, map[string]string{"result": "success"})
}

// TrackCurrentPage records dest as the user's last page on the server and then
// mirrors it into the cached profile. Preview routes are ignored. Request
// failures are returned and leave the cache untouched.
func (s *UserSession) TrackCurrentPage(ctx context.Context, dest domainuser.Destination) error {
	if strings.HasSuffix(dest.Path, previewSuffix) {
		return nil
	}

	if err := s.api.TrackPage(ctx, dest.FullPath); err != nil {
		s.metrics.Count(metricSessionTrack, 1, map[string]string{"result": "error"})
		return fmt.Errorf("track page %q: %w", dest.FullPath, err)
	}
	s.metrics.Count(metricSessionTrack, 1, map[string]string{"result": "success"})

	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.current.(*domainuser.AuthenticatedUser); ok {
		rec := domainuser.Clone(u.Record)
		if rec == nil {
			rec = domainuser.Record{}
		}
		rec[domainuser.FieldLastPage] = dest.FullPath
		s.current = &domainuser.AuthenticatedUser{Record: rec}
	}
	return nil
}

// SetShareUser installs a share identity, as done when opening a shared link.
func (s *UserSession) SetShareUser(share domainuser.ShareUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &share
}

// CurrentUser returns a deep copy of the cached user, or nil.
//
//nolint:ireturn // sum type
func (s *UserSession) CurrentUser() domainuser.CurrentUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domainuser.CloneUser(s.current)
}

// Loading reports whether a Load is in flight.
func (s *UserSession) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Err returns the error captured by the last failed Load.
func (s *UserSession) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Snapshot returns user, loading and error together.
func (s *UserSession) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionState{
		CurrentUser: domainuser.CloneUser(s.current),
		Loading:     s.inflight > 0,
		Err:         s.err,
	}
}

// FullName returns the display name of an authenticated user. Share users and
// empty sessions have none.
func (s *UserSession) FullName() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.current.(*domainuser.AuthenticatedUser); ok {
		return s.formatName(u.Record), true
	}
	return "", false
}

// IsAdmin reports role.admin_access for an authenticated user.
func (s *UserSession) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch u := s.current.(type) {
	case *domainuser.AuthenticatedUser:
		return u.Record.AdminAccess()
	case *domainuser.ShareUser:
		return false
	default:
		return false
	}
}

// IsVendor reports whether the user's role is the configured vendor role.
func (s *UserSession) IsVendor() bool { return s.roleKind() == domainuser.RoleKindVendor }

// IsManager reports whether the user's role is the configured manager role.
func (s *UserSession) IsManager() bool { return s.roleKind() == domainuser.RoleKindManager }

// IsDirector reports whether the user's role is the configured director role.
func (s *UserSession) IsDirector() bool { return s.roleKind() == domainuser.RoleKindDirector }

func (s *UserSession) roleKind() domainuser.RoleKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch u := s.current.(type) {
	case *domainuser.AuthenticatedUser:
		return s.roles.Map(u.Record.RoleID())
	default:
		return domainuser.RoleKindNone
	}
}
