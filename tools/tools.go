//go:build tools
// +build tools

// Package tools lists the development tools used with recruit-web.
// They are run with `go run` or installed with `go install` and are not module dependencies.
package tools

// Air reloads the server on Go changes; set DEV=true so templates are read from disk too.
//   Install: go install github.com/air-verse/air@v1.63.0
//   Run:     air --build.cmd "go build -o ./tmp/recruit-web ./cmd/recruit-web" --build.bin ./tmp/recruit-web
//
// mockgen regenerates internal/mocks from the ports interfaces.
//   Run: go generate ./internal/mocks
