package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	apperrors "github.com/target/mmk-usersession/internal/errors"
	"github.com/target/mmk-usersession/internal/ports"
)

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	Store     ports.ProfileStore
	Projector *FieldProjector
	Logger    *slog.Logger
}

// ProfileService answers the /users/me endpoints of the development users API.
type ProfileService struct {
	store     ports.ProfileStore
	projector *FieldProjector
	logger    *slog.Logger
}

// NewProfileService constructs a ProfileService.
func NewProfileService(opts ProfileServiceOptions) (*ProfileService, error) {
	if opts.Store == nil {
		return nil, errors.New("profile store is required")
	}
	projector := opts.Projector
	if projector == nil {
		projector = NewFieldProjector(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{store: opts.Store, projector: projector, logger: logger}, nil
}

// Me returns the stored profile of userID narrowed to fields.
func (s *ProfileService) Me(ctx context.Context, userID string, fields []string) (domainuser.Record, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("user id is required")
	}
	rec, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return s.projector.Project(rec, fields)
}

// ShareProfile returns the stub served to share sessions.
func (s *ProfileService) ShareProfile(share, roleID string, fields []string) (domainuser.Record, error) {
	stub := domainuser.ToRecord(&domainuser.ShareUser{Share: share, Role: domainuser.ShareRole{ID: roleID}})
	// The share stub is always answered whole; selectors are only validated.
	if _, err := s.projector.Project(stub, fields); err != nil {
		return nil, err
	}
	return stub, nil
}

// TrackPage records lastPage for userID.
func (s *ProfileService) TrackPage(ctx context.Context, userID, lastPage string) error {
	if userID == "" {
		return apperrors.Unauthorized("user id is required")
	}
	if strings.TrimSpace(lastPage) == "" {
		return apperrors.ValidationField(domainuser.FieldLastPage, "last_page is required")
	}
	if err := s.store.SetLastPage(ctx, userID, lastPage); err != nil {
		return fmt.Errorf("set last page: %w", err)
	}
	s.logger.DebugContext(ctx, "tracked last page", "user_id", userID, "last_page", lastPage)
	return nil
}

// Upsert stores rec under its id.
func (s *ProfileService) Upsert(ctx context.Context, rec domainuser.Record) error {
	id := rec.ID()
	if id == "" {
		return apperrors.ValidationField(domainuser.FieldID, "id is required")
	}
	if err := s.store.Save(ctx, id, rec); err != nil {
		return fmt.Errorf("save profile %s: %w", id, err)
	}
	return nil
}
