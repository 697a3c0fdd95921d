package controller_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"obrafoto/config"
	"obrafoto/controller"
	"obrafoto/middlewares"
	"obrafoto/models"
	"obrafoto/route"
	"obrafoto/services"
	"obrafoto/utils"

	"github.com/gin-gonic/gin"
)

const testAdminToken = "ops-override-secret"

func newTestServer(t *testing.T) (*gin.Engine, *memImageStore, *memUserStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AdminToken:      testAdminToken,
		JWTSecret:       "test-secret",
		PythonBin:       "false",
		InferenceScript: "inference_test.py",
		ModelPath:       "weights_26.pt",
		TempDir:         filepath.Join(t.TempDir(), "temp"),
		ResultsDir:      filepath.Join(t.TempDir(), "results"),
		InferenceLimit:  5 * time.Second,
	}

	images := newMemImageStore()
	users := newMemUserStore()
	h := controller.New(cfg, images, users, services.NewInference(cfg), nil)

	router := gin.New()
	route.Public(router, h, cfg.ResultsDir)
	route.Admin(router, h, middlewares.AdminGate(cfg, users))
	return router, images, users
}

func addUser(t *testing.T, users *memUserStore, email, cpf string, isAdmin, active bool) *models.User {
	t.Helper()

	cpfHash, err := utils.HashCpf(cpf)
	if err != nil {
		t.Fatalf("HashCpf failed: %v", err)
	}
	user := &models.User{
		Email:   email,
		CpfHash: cpfHash,
		IsAdmin: isAdmin,
		Active:  active,
	}
	if _, err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return user
}

func addImage(t *testing.T, images *memImageStore, folder, name string, data []byte, contentType string) *models.Image {
	t.Helper()

	img := &models.Image{
		Name:   name,
		Folder: folder,
	}
	if data != nil {
		img.Img = models.ImageBlob{Data: data, ContentType: contentType}
	}
	if _, err := images.Put(context.Background(), img); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	return img
}

func doRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func multipartUpload(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("WriteField failed: %v", err)
		}
	}
	for name, data := range files {
		part, err := writer.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("CreateFormFile failed: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("part write failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("writer close failed: %v", err)
	}
	return body, writer.FormDataContentType()
}
