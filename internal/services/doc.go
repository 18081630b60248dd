// Package services implements the read side of the worker's admin API.
//
// Services sit between HTTP handlers and the data store. The IPC path does
// not go through this package: requests flow from the transport straight to
// the worker and its processor.
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    └── DictionaryService ──► Store
//
// # DictionaryService
//
// List returns a page of dictionary entries ordered by word, optionally
// filtered by prefix, together with the total number of matching entries:
//
//	result, err := srv.List(ctx, services.DictionaryListParams{
//	    Prefix: "he",
//	    Limit:  20,
//	    Offset: 0,
//	})
//
// Get returns a single entry or store.ErrEntryNotFound.
package services
