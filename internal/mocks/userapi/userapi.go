package userapi

// Package userapi contains simple hand-written test doubles for the users API port.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	"github.com/target/mmk-usersession/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.UserAPI = (*FakeUserAPI)(nil)

// FakeUserAPI serves a fixed profile and records every call.
// GetFunc and TrackFunc override the default behavior when set.
type FakeUserAPI struct {
	GetFunc   func(ctx context.Context, fields []string) (domainuser.Record, error)
	TrackFunc func(ctx context.Context, lastPage string) error

	// Profile is returned (deep-copied) by GetCurrentUser when GetFunc is nil.
	Profile domainuser.Record

	mu         sync.Mutex
	getCalls   [][]string
	trackCalls []string
}

// NewFakeUserAPI creates a FakeUserAPI serving profile.
func NewFakeUserAPI(profile domainuser.Record) *FakeUserAPI {
	return &FakeUserAPI{Profile: profile}
}

func (f *FakeUserAPI) GetCurrentUser(ctx context.Context, fields []string) (domainuser.Record, error) {
	f.mu.Lock()
	f.getCalls = append(f.getCalls, append([]string(nil), fields...))
	fn := f.GetFunc
	profile := domainuser.Clone(f.Profile)
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, fields)
	}
	return profile, nil
}

func (f *FakeUserAPI) TrackPage(ctx context.Context, lastPage string) error {
	f.mu.Lock()
	f.trackCalls = append(f.trackCalls, lastPage)
	fn := f.TrackFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, lastPage)
	}
	return nil
}

// GetCalls returns the field selections passed to GetCurrentUser, in order.
func (f *FakeUserAPI) GetCalls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.getCalls...)
}

// TrackCalls returns the pages passed to TrackPage, in order.
func (f *FakeUserAPI) TrackCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trackCalls...)
}
