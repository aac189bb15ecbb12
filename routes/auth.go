package routes

import (
	"database/sql"

	"github.com/gorilla/mux"

	"communekit.com/project-community-app/handlers"
	"communekit.com/project-community-app/middleware"
)

func CreateAuthRoutes(db *sql.DB, router *mux.Router) *mux.Router {
	router.HandleFunc("/auth/register", handlers.Register(db)).Methods("POST")
	router.HandleFunc("/auth/login", handlers.Login(db)).Methods("POST")

	router.Handle("/devices/token", middleware.RequireAuth(handlers.RegisterDeviceToken(db))).Methods("POST")
	router.Handle("/devices/token", middleware.RequireAuth(handlers.UnregisterDeviceToken(db))).Methods("DELETE")

	return router
}
