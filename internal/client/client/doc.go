// Package client is the client-side transport to the SehatBeat backend.
//
// Backend is the contract the data layer depends on: the typed api.Service
// surface, a change-feed Subscribe, and Close. GRPCClient implements it over
// a single gRPC connection using the JSON codec. Each call carries the
// current identity token (access_token metadata) taken from a TokenSource,
// and gRPC status codes are mapped to sentinel errors callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrForbidden,
// ErrNotFound. Calls are never retried.
package client
