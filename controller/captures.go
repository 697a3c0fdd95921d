package controller

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"time"

	"obrafoto/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// captureContentType is what the mobile camera produces.
const captureContentType = "image/jpeg"

// UploadCapture stores one capture from the mobile client: image bytes plus
// GPS, orientation and descriptive metadata. A capture without imageBase64
// becomes a placeholder record, which is how the client pre-registers a
// folder.
func (h *Handler) UploadCapture(c *gin.Context) {
	var capture models.CaptureRequest
	if err := c.ShouldBindJSON(&capture); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	validate := validator.New()
	if err := validate.Struct(capture); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed"})
		return
	}

	img := &models.Image{
		Name:        capture.NomeObra,
		Folder:      capture.Folder,
		Description: capture.Descricao,
		PointOfView: capture.PontoDeVista,
		IfcArea:     capture.IfcAreaName,
		Gps:         capture.Gps,
		Orientation: capture.Orientacao,
		CreatedAt:   parseCaptureTimestamp(capture.CriadoEm),
	}

	if capture.ImageBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(capture.ImageBase64)
		if err != nil {
			log.Println(err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid image data"})
			return
		}
		img.Img = models.ImageBlob{Data: data, ContentType: captureContentType}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := h.images.Put(ctx, img); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error saving capture"})
		return
	}
	if h.mirror != nil && img.HasPayload() {
		h.mirror.StoreAsync(img.Folder, img.Name+".jpg", captureContentType, img.Img.Data)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Capture stored"})
}

// CreateFolder pre-registers a folder by inserting a placeholder record,
// since folders only exist as values on images.
func (h *Handler) CreateFolder(c *gin.Context) {
	var req models.FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "folderName is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	img := &models.Image{
		Name:   req.FolderName,
		Folder: req.FolderName,
	}
	if _, err := h.images.Put(ctx, img); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating folder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Folder created"})
}

// parseCaptureTimestamp accepts the formats the mobile client has shipped
// with and falls back to server time.
func parseCaptureTimestamp(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "02/01/2006 15:04:05"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Now()
}
