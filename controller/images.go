package controller

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"obrafoto/models"
	"obrafoto/repository"
	"obrafoto/services"

	"github.com/gin-gonic/gin"
)

// maxUploadFiles matches the limit the web dashboard was built against.
const maxUploadFiles = 20

// Folders lists every derived folder with its latest-activity timestamp and
// a thumbnail preview of its newest image.
func (h *Handler) Folders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summaries, err := h.images.Folders(ctx)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing folders"})
		return
	}

	folders := make([]models.FolderInfo, 0, len(summaries))
	for _, summary := range summaries {
		folders = append(folders, models.FolderInfo{
			Name:    summary.Name,
			Date:    summary.LastActivity,
			Preview: h.folderPreview(ctx, summary.Name),
			Type:    "folder",
		})
	}
	c.JSON(http.StatusOK, folders)
}

func (h *Handler) folderPreview(ctx context.Context, folder string) string {
	latest, err := h.images.LatestInFolder(ctx, folder)
	if err != nil || !latest.HasPayload() {
		return services.DefaultFolderPreview
	}
	preview, err := services.PreviewDataURI(latest.Img.Data)
	if err != nil {
		return services.DefaultFolderPreview
	}
	return preview
}

// FolderImages returns every image of one folder, payload inlined as a
// data: URI for the dashboard.
func (h *Handler) FolderImages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	images, err := h.images.ListByFolder(ctx, c.Param("folderName"))
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing images"})
		return
	}

	entries := make([]models.FolderImage, 0, len(images))
	for _, img := range images {
		entry := models.FolderImage{
			ID:          img.ID.Hex(),
			NomeDaObra:  img.Name,
			Descricao:   img.Description,
			CriadoEm:    img.CreatedAt.Format(time.RFC3339),
			ContentType: img.Img.ContentType,
		}
		if img.HasPayload() {
			entry.Base64 = "data:" + img.Img.ContentType + ";base64," +
				base64.StdEncoding.EncodeToString(img.Img.Data)
		}
		entries = append(entries, entry)
	}
	c.JSON(http.StatusOK, entries)
}

// ServeImage streams the raw payload with its stored content type.
// Placeholder records without binary data are treated as missing.
func (h *Handler) ServeImage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	img, err := h.images.Get(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		log.Println(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if !img.HasPayload() {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, img.Img.ContentType, img.Img.Data)
}

// Upload accepts up to 20 files in one multipart request and stores one
// record per file. An existing-folder selection wins over a new-folder name.
func (h *Handler) Upload(c *gin.Context) {
	folder := c.PostForm("folder")
	if folder == "" {
		folder = c.PostForm("newFolder")
	}
	if folder == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No folder selected"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}
	if len(files) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many files"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			log.Println(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading upload"})
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			log.Println(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading upload"})
			return
		}

		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		img := &models.Image{
			Name:   strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename)),
			Folder: folder,
			Img: models.ImageBlob{
				Data:        data,
				ContentType: contentType,
			},
		}
		if _, err := h.images.Put(ctx, img); err != nil {
			log.Println(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving images"})
			return
		}
		if h.mirror != nil {
			h.mirror.StoreAsync(folder, file.Filename, contentType, data)
		}
	}

	c.Redirect(http.StatusFound, "/")
}

// DeleteImage removes a record by id.
func (h *Handler) DeleteImage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := h.images.Delete(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		log.Println(err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}
