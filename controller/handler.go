package controller

import (
	"obrafoto/config"
	"obrafoto/repository"
	"obrafoto/services"
)

// Handler holds every dependency the HTTP handlers need. Everything is
// injected at startup; handlers keep no package-level state.
type Handler struct {
	cfg       *config.Config
	images    repository.ImageStore
	users     repository.UserStore
	inference *services.Inference
	mirror    *services.Mirror
}

// New builds the handler set. mirror may be nil when no bucket is
// configured.
func New(cfg *config.Config, images repository.ImageStore, users repository.UserStore,
	inference *services.Inference, mirror *services.Mirror) *Handler {
	return &Handler{
		cfg:       cfg,
		images:    images,
		users:     users,
		inference: inference,
		mirror:    mirror,
	}
}
