// Package tasks drives the session-scoped catalog lookup that annotates a note with music metadata.
//
// # State Machine
//
// A [models.WorkflowSelection] moves through three states:
//
//  1. Idle : nothing searched yet, or the previous selection expired
//  2. Results : [LookupEngine.Search] found an artist and listed its works
//     - The pick list may be empty when nothing matched or the catalog failed
//  3. Enriched : [LookupEngine.SelectWork] fetched the relations and first recording of a work
//     - The pick list from the search is kept
//
// A new search always starts over from a fresh selection.
//
// # Degraded Lookups
//
// Catalog failures are logged and folded into the result instead of returned:
//   - a failed search yields an empty pick list
//   - a failed relation lookup yields a [models.WorkInfo] with Error set
//   - a failed recording lookup yields no recording id
//
// # Progress Reporting
//
// Both operations accept an optional channel of [ProgressUpdate]. Sends never block, so a nil or
// full channel only drops updates.
package tasks
