// Package identity answers "who is signed in" for the client data layer.
//
// A Session holds the ambient identity token. A Resolver turns it into the
// external subject id through a Provider, but only when an identity provider
// is configured; otherwise every resolution is "nobody" and the provider is
// never consulted. Resolution is a pure read.
package identity
