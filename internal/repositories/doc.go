// Package repositories implements SQLite persistence for accounts and notes.
//
// Key Implementations:
//   - [UserRepository] : the account store (signup, login verification, password reset)
//   - [NoteRepository] : per-user note CRUD, listed by ascending id
//
// Every statement is parameterized and scoped to the caller's context. Ownership is enforced in the
// WHERE clause of each note statement rather than by a separate lookup, so a request against
// someone else's note simply affects zero rows.
package repositories
