package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/ipc-worker/api/v1"
	"github.com/kubev2v/ipc-worker/internal/processor"
	"github.com/kubev2v/ipc-worker/internal/services"
	"github.com/kubev2v/ipc-worker/internal/store"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// keeps (page-1)*pageSize far from overflowing
	maxPage = 1 << 24
)

// ListDictionary returns the dictionary entries with prefix filtering and pagination
// (GET /dictionary)
func (h *Handler) ListDictionary(c *gin.Context) {
	var params v1.DictionaryListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = *params.Page
	}
	if page > maxPage {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("page must not exceed %d", maxPage)})
		return
	}
	pageSize := defaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = min(*params.PageSize, maxPageSize)
	}
	prefix := ""
	if params.Prefix != nil {
		prefix = processor.Normalize(*params.Prefix)
	}

	result, err := h.dictSrv.List(c.Request.Context(), services.DictionaryListParams{
		Prefix: prefix,
		Limit:  uint64(pageSize),
		Offset: uint64((page - 1) * pageSize),
	})
	if err != nil {
		zap.S().Named("dictionary_handler").Errorw("failed to list dictionary", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list dictionary"})
		return
	}

	pageCount := (result.Total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	entries := make([]v1.DictionaryEntry, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, v1.NewDictionaryEntryFromModel(e))
	}

	c.JSON(http.StatusOK, v1.DictionaryListResponse{
		Page:      page,
		PageCount: pageCount,
		Total:     result.Total,
		Entries:   entries,
	})
}

// GetDictionaryEntry returns a single entry
// (GET /dictionary/{word})
func (h *Handler) GetDictionaryEntry(c *gin.Context) {
	word := processor.Normalize(c.Param("word"))

	entry, err := h.dictSrv.Get(c.Request.Context(), word)
	if err != nil {
		if errors.Is(err, store.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("dictionary_handler").Errorw("failed to get dictionary entry", "word", word, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get dictionary entry"})
		return
	}

	c.JSON(http.StatusOK, v1.NewDictionaryEntryFromModel(*entry))
}
