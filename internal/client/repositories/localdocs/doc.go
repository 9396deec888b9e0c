// Package localdocs keeps client-only clinical documents: records created
// while the backend is disabled, or that the backend refused because they
// are local. Ids carry the common.LocalIDPrefix so the data layer never
// sends them to the backend.
//
// Each document is stored as AES-GCM ciphertext of its JSON form under a key
// derived from the local passphrase (see Unlock). Only the id and timestamps
// are kept in clear for ordering.
package localdocs
