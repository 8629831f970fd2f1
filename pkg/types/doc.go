// Package types defines the entities, standard deliverables, configuration,
// store interface, and standard errors for the conchdesk workspace.
//
// The Store interface is implemented by internal/store; the workspace
// services in internal/workspace and the HTTP surface in internal/httpapi
// depend only on the types declared here.
package types
