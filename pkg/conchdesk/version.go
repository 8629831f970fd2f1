// Package conchdesk holds build metadata for the conchdesk binary.
package conchdesk

// Version is the release version reported by the CLI.
const Version = "v0.1.0"
