package models

// WorkerStats is a point-in-time snapshot of the worker counters.
type WorkerStats struct {
	InstanceID string `json:"instanceId"`
	Received   uint64 `json:"received"`
	Completed  uint64 `json:"completed"`
	Failed     uint64 `json:"failed"`
	Abandoned  uint64 `json:"abandoned"`
	Rejected   uint64 `json:"rejected"`
	Dropped    uint64 `json:"dropped"`
	Pending    int    `json:"pending"`
}

// DictionaryEntry is a word stored by the dictionary processor.
type DictionaryEntry struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}
