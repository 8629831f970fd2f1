//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for conchdesk using Mage.
//
// Usage:
//
//	mage build       Compile the conchdesk binary to bin/
//	mage install     Copy the binary to GOPATH/bin
//	mage clean       Remove build artifacts
//	mage test:all    Run every test
//	mage test:unit   Run tests in short mode
//	mage test:race   Run tests with the race detector
//	mage test:cover  Write coverage to bin/coverage.out
//	mage lint        Run go vet and golangci-lint
//	mage stats       Print Go line counts per package
package main
