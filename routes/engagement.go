package routes

import (
	"database/sql"

	"github.com/gorilla/mux"

	"communekit.com/project-community-app/handlers"
	"communekit.com/project-community-app/middleware"
	"communekit.com/project-community-app/store"
)

func CreateEngagementRoutes(es store.EngagementStore, db *sql.DB, router *mux.Router) *mux.Router {
	router.HandleFunc("/contents", handlers.ListContents(db)).Methods("GET")
	router.Handle("/contents", middleware.RequireAuth(handlers.CreateContent(db))).Methods("POST")
	router.HandleFunc("/contents/{kind}/{id}", handlers.GetContent(es)).Methods("GET")
	router.Handle("/contents/{kind}/{id}/like-count", middleware.RequireAuth(handlers.SetLikeCount(es, db))).Methods("PUT")
	router.HandleFunc("/contents/{kind}/{id}/comments", handlers.GetCommentsPage(es)).Methods("GET")
	router.Handle("/contents/{kind}/{id}/comments", middleware.RequireAuth(handlers.CreateComment(es, db))).Methods("POST")
	router.Handle("/contents/{kind}/{id}/comment-count", middleware.RequireAuth(handlers.SetCommentCount(es))).Methods("PUT")

	return router
}
