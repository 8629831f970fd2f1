// Package httpapi exposes lead intake and the engagement workspace over
// HTTP. Handlers decode the request, call into internal/workspace, and map
// sentinel errors from pkg/types onto status codes. Error bodies carry a
// generic message; details go to the server log only.
package httpapi
