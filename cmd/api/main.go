package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"chirpboard/cmd/app"
	"chirpboard/internal/config"
	handlers "chirpboard/internal/handler"
	"chirpboard/internal/middleware"
	"chirpboard/internal/worker"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handlers.HealthHandler(db)).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)

	router.HandleFunc("/api/accounts/{id}", handler.GetAccount).Methods(http.MethodGet)
	router.HandleFunc("/api/accounts/{id}/followers", handler.GetFollowers).Methods(http.MethodGet)
	router.HandleFunc("/api/accounts/{id}/followings", handler.GetFollowings).Methods(http.MethodGet)
	router.HandleFunc("/api/accounts/{id}/follow", handler.Follow).Methods(http.MethodPost)
	router.HandleFunc("/api/accounts/{id}/follow", handler.Unfollow).Methods(http.MethodDelete)
	router.HandleFunc("/api/accounts/{id}/follow", handler.GetFollowState).Methods(http.MethodGet)

	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/reserved", handler.ReservePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/reserved", handler.GetReservations).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{id}/like", handler.LikePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}/like", handler.UnlikePost).Methods(http.MethodDelete)
	router.HandleFunc("/api/posts/{id}/comments", handler.CreateComment).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}/comments", handler.GetComments).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{id}/images", handler.AddImage).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{id}/images", handler.GetImages).Methods(http.MethodGet)
	router.HandleFunc("/api/comments/{id}/like", handler.LikeComment).Methods(http.MethodPost)
	router.HandleFunc("/api/comments/{id}/like", handler.UnlikeComment).Methods(http.MethodDelete)
	router.HandleFunc("/api/images/{id}", handler.DeleteImage).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// reserved post promotion runs for the lifetime of the process
	promotionWorker := worker.New(repo.Reserved, cfg.WorkerInterval)
	go promotionWorker.Run(context.Background())

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)
	log.Printf("Database: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
