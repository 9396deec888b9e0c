// Package common contains shared constants and sentinel errors used across
// SehatBeat components.
package common

// AccessTokenHeaderName is the gRPC/HTTP metadata key used to carry the
// identity token on outbound requests.
const AccessTokenHeaderName = "access_token"

// LocalIDPrefix marks identifiers of client-only records. Such records have
// never been persisted by the backend and must not be addressed remotely.
const LocalIDPrefix = "local-"
