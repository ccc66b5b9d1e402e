// Package mocks provides mock implementations for testing the recruit-web session and API layers.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the ports interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockAuthAPI(ctrl)
//	api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(cred, nil)
package mocks

// Generate mock for AuthAPI interface from internal/ports package.
// This creates MockAuthAPI with methods: Login, Signup
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_api_mock.go github.com/recruitdesk/recruit-web/internal/ports AuthAPI

// Generate mock for CredentialStore interface from internal/ports package.
// This creates MockCredentialStore with methods: Load, Save, Clear
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=credential_store_mock.go github.com/recruitdesk/recruit-web/internal/ports CredentialStore

// Generate mock for RecruitmentAPI interface from internal/ports package.
// This creates MockRecruitmentAPI with methods for every job and application endpoint.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=recruitment_api_mock.go github.com/recruitdesk/recruit-web/internal/ports RecruitmentAPI
