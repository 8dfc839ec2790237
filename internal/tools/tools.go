//go:build tools
// +build tools

// Package tools pins the development tools used by CI so `go run` resolves
// them from go.mod.
package tools

import (
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
	_ "golang.org/x/tools/cmd/goimports"
	_ "gotest.tools/gotestsum"
)
