package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/ipc-worker/api/v1"
)

// GetHealth reports liveness
// (GET /health)
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetWorkerStatus returns the worker counters
// (GET /worker)
func (h *Handler) GetWorkerStatus(c *gin.Context) {
	var status v1.WorkerStatus
	status.FromModel(h.worker.Stats())
	c.JSON(http.StatusOK, status)
}
