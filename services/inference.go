package services

import (
	"context"
	"errors"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"obrafoto/config"
	"obrafoto/models"
)

// The external script always writes these two files into the output dir.
const (
	originalFileName  = "original.png"
	overlayFileName   = "overlay.png"
	inferenceChannels = "4"
)

var (
	// ErrNoImageData means the record exists but carries no binary payload,
	// so there is nothing to run inference on.
	ErrNoImageData = errors.New("image has no binary data")
	// ErrInferenceBusy means a run for the same image id is already in
	// flight; the temp path is keyed by id, so a second run would race it.
	ErrInferenceBusy = errors.New("inference already running for this image")
	// ErrInferenceFailed covers every subprocess failure. The script's
	// stderr is logged, never surfaced to the client.
	ErrInferenceFailed = errors.New("inference failed")
)

// InferenceResult holds the servable URLs of one finished run.
type InferenceResult struct {
	Status   string `json:"status"`
	Original string `json:"original"`
	Overlay  string `json:"overlay"`
}

// Inference materializes a stored image to a temp file and shells out to
// the progress-estimation script. The script is an opaque dependency: it is
// judged only by its exit code and the two files it leaves behind.
type Inference struct {
	cfg *config.Config

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewInference(cfg *config.Config) *Inference {
	return &Inference{
		cfg:      cfg,
		inflight: make(map[string]struct{}),
	}
}

func (s *Inference) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, running := s.inflight[id]; running {
		return false
	}
	s.inflight[id] = struct{}{}
	return true
}

func (s *Inference) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}

// Run executes the full inference sequence for one image. Re-running for
// the same id overwrites the previous temp file and results. On any failure
// or deadline the temp file and the per-image results directory are removed.
func (s *Inference) Run(ctx context.Context, img *models.Image) (*InferenceResult, error) {
	if !img.HasPayload() {
		return nil, ErrNoImageData
	}

	id := img.ID.Hex()
	if !s.acquire(id) {
		return nil, ErrInferenceBusy
	}
	defer s.release(id)

	if err := os.MkdirAll(s.cfg.TempDir, 0755); err != nil {
		return nil, err
	}
	tempPath := filepath.Join(s.cfg.TempDir, id+".jpg")
	if err := os.WriteFile(tempPath, img.Img.Data, 0644); err != nil {
		return nil, err
	}

	resultDir := filepath.Join(s.cfg.ResultsDir, id)
	if err := os.MkdirAll(resultDir, 0755); err != nil {
		os.Remove(tempPath)
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.InferenceLimit)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.cfg.PythonBin, s.cfg.InferenceScript,
		"--model_path", s.cfg.ModelPath,
		"--image_path", tempPath,
		"--output_dir", resultDir,
		"--channels", inferenceChannels,
	)

	output, err := cmd.CombinedOutput()
	if len(output) > 0 {
		log.Printf("inference %s: %s", id, output)
	}
	if err != nil {
		s.cleanup(tempPath, resultDir)
		if runCtx.Err() != nil {
			log.Printf("inference %s: deadline exceeded after %s", id, s.cfg.InferenceLimit)
		} else {
			log.Printf("inference %s: %v", id, err)
		}
		return nil, ErrInferenceFailed
	}

	return &InferenceResult{
		Status:   "ok",
		Original: "/results/" + id + "/" + originalFileName,
		Overlay:  "/results/" + id + "/" + overlayFileName,
	}, nil
}

func (s *Inference) cleanup(tempPath, resultDir string) {
	if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		log.Println("inference cleanup:", err)
	}
	if err := os.RemoveAll(resultDir); err != nil {
		log.Println("inference cleanup:", err)
	}
}
