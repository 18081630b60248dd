// Package handlers implements the admin HTTP API of the worker.
//
// Handlers delegate to the worker for live counters and to the services
// layer for the dictionary, and only deal with parameter parsing and status
// codes.
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	└─────────────────────────────────────────────────────────────────┘
//	                 │                              │
//	                 ▼                              ▼
//	        worker.Stats()              services.DictionaryService
//
// # API Endpoints
//
//	┌────────┬────────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint           │ Description                          │
//	├────────┼────────────────────┼──────────────────────────────────────┤
//	│ GET    │ /health            │ Liveness                             │
//	│ GET    │ /worker            │ Worker counters and pending tasks    │
//	│ GET    │ /dictionary        │ Paginated entries (page, pageSize,   │
//	│        │                    │ prefix)                              │
//	│ GET    │ /dictionary/{word} │ Single entry, 404 when unknown       │
//	└────────┴────────────────────┴──────────────────────────────────────┘
//
// Dictionary routes are only registered when a DictionaryService is given.
// pageSize defaults to 20 and is capped at 100. Words and prefixes are
// normalized the same way the dictionary processor normalizes payloads.
package handlers
