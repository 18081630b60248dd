// Package worker implements the request/response core of the IPC worker.
//
// # Data Flow
//
//	parent ──► transport.Listen ──► Listener.Handle ──► Worker.Submit
//	                                                        │
//	                                            scheduler.AddWork (fan-out)
//	                                                        │
//	                                     wait delay ─► Process ─► emit
//	                                                        │
//	parent ◄──────────────── transport.Send ◄───────────────┘ (fan-in, unordered)
//
// Every Submit creates a models.PendingTask whose due time is drawn from the
// configured simulator.DelaySource when the request arrives. Tasks run on a
// bounded scheduler pool; each waits until its own due time, calls the
// processor and emits a response carrying the request id. Responses are
// emitted in completion order, not arrival order.
//
// # Outcomes
//
//	┌──────────────────────────────┬──────────────────────────────────────┐
//	│ Situation                    │ Emitted                              │
//	├──────────────────────────────┼──────────────────────────────────────┤
//	│ Processor returns a result   │ [id, result]                         │
//	│ Processor fails or panics    │ [id, null, error]                    │
//	│ Too many pending tasks       │ [id, null, "worker overloaded"]      │
//	│ Send keeps failing           │ nothing, response logged and dropped │
//	│ Shutdown before completion   │ nothing, task abandoned              │
//	└──────────────────────────────┴──────────────────────────────────────┘
//
// Tasks are never retried and ids are never deduplicated.
//
// # Shutdown
//
// The context passed to New is the termination signal. When it is done the
// hook registered with OnShutdown logs "worker exiting" and closes the
// scheduler. Pending tasks observe the cancellation and return without
// emitting. The hook runs in its own goroutine and never delays the caller
// that cancelled the context; Stopped is closed once it has finished.
//
// Drain is the graceful alternative: it waits for the pending tasks to
// complete, for callers whose input ended but whose output is still open.
package worker
