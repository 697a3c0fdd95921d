package route

import (
	"net/http"

	"obrafoto/controller"

	"github.com/gin-gonic/gin"
)

// Public registers every route the mobile and web clients call without the
// admin gate, plus the static results directory the inference script
// writes into.
func Public(router *gin.Engine, h *controller.Handler, resultsDir string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.Static("/results", resultsDir)

	router.GET("/api/folders", h.Folders)
	router.GET("/folder/:folderName", h.FolderImages)
	router.GET("/image/:id", h.ServeImage)
	router.POST("/upload", h.Upload)
	router.DELETE("/delete/:id", h.DeleteImage)

	router.POST("/api/captures/upload", h.UploadCapture)
	router.POST("/create-folder", h.CreateFolder)

	// The web dashboard still calls this with GET.
	router.POST("/inference/:id", h.RunInference)
	router.GET("/inference/:id", h.RunInference)

	router.POST("/login", h.Login)
}

// Admin registers the user-management routes behind the gate.
func Admin(router *gin.Engine, h *controller.Handler, gate gin.HandlerFunc) {
	admin := router.Group("/admin/tbusuario")
	admin.Use(gate)
	admin.GET("", h.ListUsers)
	admin.POST("", h.CreateUser)
	admin.PATCH("/:id", h.PatchUser)
	admin.DELETE("/:id", h.DeleteUser)
}
