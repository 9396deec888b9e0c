// Package api describes the SehatBeat backend call surface shared by the
// client data layer and the server.
//
// # Overview
//
// Every remote query and mutation is a method of Service with its own
// request and response type. The same surface travels over gRPC: the
// service descriptor is written by hand (see ServiceDesc) and messages are
// encoded as JSON through a codec registered under the "json" content
// subtype, so no generated code is involved.
//
// # Reactive reads
//
// Record sets are grouped into Topics (collection plus owning user). The
// streaming Subscribe method delivers an Event each time a topic changes;
// clients re-run their queries on each event.
package api
