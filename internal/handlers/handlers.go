package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kubev2v/ipc-worker/internal/models"
	"github.com/kubev2v/ipc-worker/internal/services"
)

// StatsProvider is implemented by worker.Worker.
type StatsProvider interface {
	Stats() models.WorkerStats
}

type Handler struct {
	worker  StatsProvider
	dictSrv *services.DictionaryService
}

// New builds the handler. dictSrv may be nil when the worker runs without
// the dictionary processor; the dictionary routes are not registered then.
func New(worker StatsProvider, dictSrv *services.DictionaryService) *Handler {
	return &Handler{
		worker:  worker,
		dictSrv: dictSrv,
	}
}

// RegisterRoutes mounts the API on router, which is expected to be the
// /api/v1 group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.GetHealth)
	router.GET("/worker", h.GetWorkerStatus)

	if h.dictSrv != nil {
		router.GET("/dictionary", h.ListDictionary)
		router.GET("/dictionary/:word", h.GetDictionaryEntry)
	}
}
