// Package models defines the domain entities for the muse notes service.
//
// The package contains two categories of types:
//
// 1. Persistent Entities: rows owned by the relational store
//   - [User] : account credentials (username + bcrypt hash)
//   - [Note] : a free-text note owned by a single user
//
// 2. Catalog Records: transient values decoded from the MusicBrainz web service
//   - [CatalogWork] : a (title, work id) pair produced by an artist search
//   - [CatalogRelation] : one credited contributor of a work
//   - [WorkInfo] : the relation list for a work, or an explicit error record
//
// [WorkflowSelection] ties the catalog records together. It is the session-scoped state machine
// (Idle → Results → Enriched) that carries a catalog lookup across page views until a note editor renders it.
package models
