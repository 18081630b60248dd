package v1

// WorkerStatus is the body of GET /worker.
type WorkerStatus struct {
	InstanceID string         `json:"instanceId"`
	Pending    int            `json:"pending"`
	Counters   WorkerCounters `json:"counters"`
}

type WorkerCounters struct {
	Received  uint64 `json:"received"`
	Completed uint64 `json:"completed"`
	Failed    uint64 `json:"failed"`
	Abandoned uint64 `json:"abandoned"`
	Rejected  uint64 `json:"rejected"`
	Dropped   uint64 `json:"dropped"`
}

type DictionaryEntry struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

// DictionaryListResponse is the body of GET /dictionary.
type DictionaryListResponse struct {
	Page      int               `json:"page"`
	PageCount int               `json:"pageCount"`
	Total     int               `json:"total"`
	Entries   []DictionaryEntry `json:"entries"`
}

// DictionaryListParams are the query parameters of GET /dictionary.
type DictionaryListParams struct {
	Page     *int    `form:"page"`
	PageSize *int    `form:"pageSize"`
	Prefix   *string `form:"prefix"`
}
