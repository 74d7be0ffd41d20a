// Package services talks to the MusicBrainz web service (https://musicbrainz.org/doc/MusicBrainz_API).
//
// # Catalog Interface
//
// [Catalog] is the three-call surface the note workflow needs:
//   - [Catalog.SearchArtistWorks] : artist name → first matching artist → up to 100 of its works
//   - [Catalog.WorkRelations] : work id → credited contributors
//   - [Catalog.FirstRecordingID] : work id → first linked recording id
//
// A second hop is needed for recordings because MusicBrainz keeps separate identifiers for a work
// and its recordings. Callers should treat every decoded field as optional. Missing names and
// relation types are replaced with the sentinels in the models package.
//
// # Transport
//
// [APIService] is the raw GET client underneath [MusicBrainz]. It:
//   - sets the User-Agent MusicBrainz requires of every client
//   - waits on a [rate.Limiter] before each request (the public service allows ~1 req/s)
//   - caches successful bodies by URL in a [cache.Cache]
//
// # Error Handling
//
// Transport, status and decode failures wrap [shared.ErrCatalogRequest]. The exception is
// [MusicBrainz.WorkRelations], which reports a non-success status as an explicit
// [models.WorkInfo] error record so the workflow can display it.
package services
