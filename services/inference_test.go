package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"obrafoto/config"
	"obrafoto/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// writeScript drops an executable stand-in for the inference script. The
// runner only looks at the exit code, so a shell script is enough.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-inference.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("write script failed: %v", err)
	}
	return path
}

func inferenceConfig(t *testing.T, script string, limit time.Duration) *config.Config {
	t.Helper()
	base := t.TempDir()
	return &config.Config{
		PythonBin:       script,
		InferenceScript: "inference_test.py",
		ModelPath:       "weights_26.pt",
		TempDir:         filepath.Join(base, "temp"),
		ResultsDir:      filepath.Join(base, "results"),
		InferenceLimit:  limit,
	}
}

func testImage(data []byte) *models.Image {
	img := &models.Image{
		ID:     bson.NewObjectID(),
		Name:   "wall",
		Folder: "SiteA",
	}
	if data != nil {
		img.Img = models.ImageBlob{Data: data, ContentType: "image/jpeg"}
	}
	return img
}

func TestInferenceRun_Success(t *testing.T) {
	cfg := inferenceConfig(t, writeScript(t, "exit 0"), 5*time.Second)
	svc := NewInference(cfg)
	img := testImage([]byte("jpeg bytes"))

	result, err := svc.Run(context.Background(), img)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	id := img.ID.Hex()
	if result.Status != "ok" {
		t.Errorf("expected status ok, got %q", result.Status)
	}
	if result.Original != "/results/"+id+"/original.png" {
		t.Errorf("unexpected original url %q", result.Original)
	}
	if result.Overlay != "/results/"+id+"/overlay.png" {
		t.Errorf("unexpected overlay url %q", result.Overlay)
	}

	// The temp file holds the materialized payload and survives success so
	// a re-run can overwrite it.
	data, err := os.ReadFile(filepath.Join(cfg.TempDir, id+".jpg"))
	if err != nil {
		t.Fatalf("temp file missing: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("temp file content mismatch: %q", data)
	}
	if _, err := os.Stat(filepath.Join(cfg.ResultsDir, id)); err != nil {
		t.Errorf("results dir missing: %v", err)
	}
}

func TestInferenceRun_NonZeroExit(t *testing.T) {
	cfg := inferenceConfig(t, writeScript(t, "exit 3"), 5*time.Second)
	svc := NewInference(cfg)
	img := testImage([]byte("jpeg bytes"))

	_, err := svc.Run(context.Background(), img)
	if !errors.Is(err, ErrInferenceFailed) {
		t.Fatalf("expected ErrInferenceFailed, got %v", err)
	}

	id := img.ID.Hex()
	if _, err := os.Stat(filepath.Join(cfg.TempDir, id+".jpg")); !os.IsNotExist(err) {
		t.Error("temp file should be removed on failure")
	}
	if _, err := os.Stat(filepath.Join(cfg.ResultsDir, id)); !os.IsNotExist(err) {
		t.Error("results dir should be removed on failure")
	}
}

func TestInferenceRun_Timeout(t *testing.T) {
	cfg := inferenceConfig(t, writeScript(t, "sleep 5"), 200*time.Millisecond)
	svc := NewInference(cfg)
	img := testImage([]byte("jpeg bytes"))

	start := time.Now()
	_, err := svc.Run(context.Background(), img)
	if !errors.Is(err, ErrInferenceFailed) {
		t.Fatalf("expected ErrInferenceFailed, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("deadline not enforced, took %v", elapsed)
	}

	id := img.ID.Hex()
	if _, err := os.Stat(filepath.Join(cfg.ResultsDir, id)); !os.IsNotExist(err) {
		t.Error("results dir should be removed on timeout")
	}
}

func TestInferenceRun_NoPayload(t *testing.T) {
	cfg := inferenceConfig(t, writeScript(t, "exit 0"), 5*time.Second)
	svc := NewInference(cfg)

	_, err := svc.Run(context.Background(), testImage(nil))
	if !errors.Is(err, ErrNoImageData) {
		t.Fatalf("expected ErrNoImageData, got %v", err)
	}

	// Nothing may touch the filesystem before the payload check.
	if _, err := os.Stat(cfg.TempDir); !os.IsNotExist(err) {
		t.Error("temp dir should not exist")
	}
	if _, err := os.Stat(cfg.ResultsDir); !os.IsNotExist(err) {
		t.Error("results dir should not exist")
	}
}

func TestInferenceRun_SameImageIsGuarded(t *testing.T) {
	cfg := inferenceConfig(t, writeScript(t, "sleep 1"), 5*time.Second)
	svc := NewInference(cfg)
	img := testImage([]byte("jpeg bytes"))

	done := make(chan error, 1)
	go func() {
		_, err := svc.Run(context.Background(), img)
		done <- err
	}()

	time.Sleep(200 * time.Millisecond)
	_, err := svc.Run(context.Background(), img)
	if !errors.Is(err, ErrInferenceBusy) {
		t.Fatalf("expected ErrInferenceBusy, got %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// Once the first run finishes the id is free again.
	if _, err := svc.Run(context.Background(), img); err != nil {
		t.Fatalf("re-run failed: %v", err)
	}
}
