package v1

import (
	"github.com/kubev2v/ipc-worker/internal/models"
)

func (s *WorkerStatus) FromModel(m models.WorkerStats) {
	s.InstanceID = m.InstanceID
	s.Pending = m.Pending
	s.Counters = WorkerCounters{
		Received:  m.Received,
		Completed: m.Completed,
		Failed:    m.Failed,
		Abandoned: m.Abandoned,
		Rejected:  m.Rejected,
		Dropped:   m.Dropped,
	}
}

// NewDictionaryEntryFromModel converts a models.DictionaryEntry to an API entry.
func NewDictionaryEntryFromModel(e models.DictionaryEntry) DictionaryEntry {
	return DictionaryEntry{
		Word:  e.Word,
		Count: e.Count,
	}
}
