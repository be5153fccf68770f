// Package mocks provides mock implementations for testing the user session.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockUserAPI(ctrl)
//	api.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any()).Return(rec, nil)
package mocks

// Generate mock for UserAPI interface from internal/ports package.
// This creates MockUserAPI with methods for all UserAPI interface methods:
// GetCurrentUser, TrackPage
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_api_mock.go github.com/target/mmk-usersession/internal/ports UserAPI
