package handler

import (
	"net/http"
	"strings"

	"github.com/aps-extract/extract-service/internal/model"
	"github.com/aps-extract/extract-service/internal/service"
	"github.com/gin-gonic/gin"
)

// dataManagementTree serves the browse tree: "#" is the root (hubs), a hub's
// self href expands into its projects.
func (h *Handler) dataManagementTree(c *gin.Context) {
	tokens := h.getTokens(c)
	if tokens == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": errNotSignedIn.Error()})
		return
	}

	id := c.Query("id")

	if id == "#" {
		nodes, err := h.services.Hierarchy.GetHubNodes(c.Request.Context(), tokens.InternalToken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, nodes)
		return
	}

	parts := strings.Split(id, "/")
	if len(parts) >= 2 && parts[len(parts)-2] == "hubs" {
		nodes, err := h.services.Hierarchy.GetProjectNodes(c.Request.Context(), tokens.InternalToken, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, nodes)
		return
	}

	c.JSON(http.StatusOK, []*service.TreeNode{})
}

// resourceInfo is the fire-and-forget crawl trigger. It enqueues one extract
// job and acknowledges immediately; results arrive through the contents hub.
func (h *Handler) resourceInfo(c *gin.Context) {
	tokens := h.getTokens(c)
	if tokens == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": errNotSignedIn.Error()})
		return
	}

	req := service.ExtractRequest{
		ConnectionID: c.Query("connectionId"),
		HubID:        c.Query("hubId"),
		ProjectID:    c.Query("projectId"),
		FolderID:     c.Query("folderId"),
		DataType:     model.DataType(c.Query("dataType")),
		Guid:         c.Query("guid"),
	}

	if err := h.services.Extract.RequestInfo(c.Request.Context(), req, tokens); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// resourceItems is the destructive session fetch: first call returns the
// items, any repeat returns an empty list.
func (h *Handler) resourceItems(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": errMissingSessionID.Error()})
		return
	}

	items, err := h.services.Extract.TakeSessionItems(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) resourceHistory(c *gin.Context) {
	guid := c.Query("guid")
	if guid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": errMissingGuid.Error()})
		return
	}

	extractions, err := h.services.Extract.FindExtractions(c.Request.Context(), guid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, extractions)
}
