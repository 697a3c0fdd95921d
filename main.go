package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"obrafoto/config"
	"obrafoto/controller"
	"obrafoto/database"
	"obrafoto/middlewares"
	"obrafoto/repository/mongodb"
	"obrafoto/route"
	"obrafoto/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println(err)
	}

	cfg := config.Load()

	client, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	images := mongodb.NewImageStore(client, cfg.MongoDB)
	users := mongodb.NewUserStore(client, cfg.MongoDB)

	var mirror *services.Mirror
	if cfg.MirrorEnabled() {
		mirror, err = services.NewMirror(context.Background(), cfg)
		if err != nil {
			log.Println("Mirror disabled:", err)
			mirror = nil
		}
	}

	inference := services.NewInference(cfg)
	h := controller.New(cfg, images, users, inference, mirror)

	router := gin.Default()
	router.Use(middlewares.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return strings.HasPrefix(origin, "http://localhost:") ||
				strings.HasPrefix(origin, "http://127.0.0.1:") ||
				strings.HasPrefix(origin, "http://")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Authorization", "Accept", "X-Admin-Token", "X-Admin-Email", "X-Admin-Cpf"},
		ExposeHeaders:    []string{"Content-Length", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	route.Public(router, h, cfg.ResultsDir)
	route.Admin(router, h, middlewares.AdminGate(cfg, users))

	router.Run(fmt.Sprintf(":%d", cfg.Port))
}
