// Package workspace implements the engagement registry, the deliverable run
// tracker, the engagement summary export, and lead intake. The services
// validate input, apply the seeding rules, and delegate persistence to a
// types.Store.
package workspace
