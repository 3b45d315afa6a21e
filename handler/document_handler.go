package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/convoai/convo-be/repository"
	"github.com/convoai/convo-be/service"
	"github.com/convoai/convo-be/types"
)

type DocumentHandler struct {
	fileService *service.FileService
	documents   repository.DocumentRepo
}

func NewDocumentHandler(fileService *service.FileService, documents repository.DocumentRepo) *DocumentHandler {
	return &DocumentHandler{
		fileService: fileService,
		documents:   documents,
	}
}

// UploadDocument accepts a multipart PDF upload and ingests it before
// responding, so the returned processing state is final.
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid file",
		})
		return
	}

	req := types.UploadRequest{Title: c.Request.FormValue("title")}
	doc, err := h.fileService.Upload(c.Request.Context(), req, file)
	if err != nil {
		status := http.StatusBadRequest
		if doc != nil {
			// The file was accepted but ingestion failed.
			status = http.StatusInternalServerError
		}
		c.JSON(status, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   documentResponse(doc),
	})
}

// GetDocument returns a single document's metadata by id.
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid document id",
		})
		return
	}

	doc, err := h.documents.GetDocument(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  false,
			Message: "Document not found",
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   documentResponse(doc),
	})
}

// ListDocuments returns all registered documents with their processing state.
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.documents.ListDocuments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to load documents",
		})
		return
	}

	resp := make([]types.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, documentResponse(doc))
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   resp,
	})
}

// ServeDocument streams a stored PDF back to the client.
func (h *DocumentHandler) ServeDocument(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid document id",
		})
		return
	}

	doc, err := h.documents.GetDocument(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  false,
			Message: "Document not found",
		})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", filepath.Base(doc.FilePath)))
	c.File(doc.FilePath)
}

func documentResponse(doc *types.Document) types.DocumentResponse {
	return types.DocumentResponse{
		ID:          doc.ID,
		Title:       doc.Title,
		FilePath:    doc.FilePath,
		IsProcessed: doc.IsProcessed,
	}
}
