// Package hooks is the entity data layer: one hook per SehatBeat entity,
// each combining the identity resolver, the backend feature gate and a
// push-updated read with its mutators.
//
// Every hook follows the same steps:
//
//  1. Resolve the signed-in identity, falling back to the configured
//     development user.
//  2. With the backend disabled, reads are live.Disabled and every mutator
//     returns OutcomeDisabled without touching the backend.
//  3. Resolve the internal user profile through a live read. Without an
//     identity, user-scoped reads are live.Skip; while the profile has not
//     loaded they are live.Pending and start once it arrives. Neither ever
//     queries with an empty user filter.
//  4. Mutators check the identifiers they need and call the backend with
//     the user id merged into the payload.
//
// Skipped writes are reported through Outcome, never as errors. Backend
// failures are returned unchanged. Clinical documents are stricter:
// AddClinicalDoc fails with ErrUnauthenticated when nobody is signed in,
// and UpdateDoc/DeleteDoc refuse local-only records with *LocalRecordError.
//
// Mutators block until the backend answers; run them in a goroutine for
// fire-and-forget behaviour. Hooks hold live subscriptions and must be
// closed; Bind rebuilds a hook whenever the identity changes.
package hooks
