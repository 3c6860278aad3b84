// Package common contains shared constants and sentinel errors used across
// adminpanel components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on API requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "

	// ContentRangeHeaderName reports the returned slice and total of a list read.
	ContentRangeHeaderName = "Content-Range"
)
