package controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"obrafoto/repository"
	"obrafoto/services"

	"github.com/gin-gonic/gin"
)

// RunInference fetches the image, runs the external progress-estimation
// script on it and answers with the URLs of the two result files. The
// response is held open until the subprocess exits; the run inherits the
// request context so a client disconnect cancels the subprocess and its
// outputs are cleaned up.
func (h *Handler) RunInference(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	img, err := h.images.Get(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	result, err := h.inference.Run(c.Request.Context(), img)
	switch {
	case errors.Is(err, services.ErrNoImageData):
		c.JSON(http.StatusNotFound, gin.H{"error": "Image has no binary data"})
	case errors.Is(err, services.ErrInferenceBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "Inference already running for this image"})
	case errors.Is(err, services.ErrInferenceFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Inference failed"})
	case err != nil:
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	default:
		c.JSON(http.StatusOK, result)
	}
}
