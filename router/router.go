// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/duelrank/cliparse"
	"github.com/danielhkuo/duelrank/handlers"
	"github.com/danielhkuo/duelrank/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	groupHandler := handlers.NewGroupHandler(db, cfg)
	itemHandler := handlers.NewItemHandler(db, cfg)
	ratingHandler := handlers.NewRatingHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// User management
	mux.HandleFunc("POST /users/register", middleware.WithLogging(userHandler.Register))
	mux.HandleFunc("GET /users/me", middleware.WithLogging(userHandler.GetMe))
	mux.HandleFunc("GET /users/my-groups", middleware.WithLogging(userHandler.GetMyGroups))

	// Group management
	mux.HandleFunc("POST /groups", middleware.WithLogging(groupHandler.CreateGroup))
	mux.HandleFunc("POST /groups/{slug}/join", middleware.WithLogging(groupHandler.JoinGroup))
	mux.HandleFunc("GET /groups/{id}", middleware.WithLogging(groupHandler.GetGroup))

	// Item management (admin operations)
	mux.HandleFunc("POST /groups/{id}/items", middleware.WithLogging(itemHandler.AddItem))
	mux.HandleFunc("POST /groups/{id}/items/import", middleware.WithLogging(itemHandler.ImportItems))

	// Rating operations (members only)
	mux.HandleFunc("GET /groups/{id}/matchup", middleware.WithLogging(ratingHandler.GetMatchup))
	mux.HandleFunc("POST /groups/{id}/comparisons", middleware.WithLogging(ratingHandler.RecordComparison))
	mux.HandleFunc("GET /groups/{id}/rankings", middleware.WithLogging(ratingHandler.GetRankings))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("duelrank API v1"))
	})

	return mux
}
