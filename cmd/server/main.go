package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"communekit.com/project-community-app/database"
	"communekit.com/project-community-app/routes"
	"communekit.com/project-community-app/services"
	"communekit.com/project-community-app/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db, err := database.ConnectDB()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatal("Schema setup failed:", err)
	}

	if firebasePath := os.Getenv("FIREBASE_CREDENTIALS_PATH"); firebasePath != "" {
		if err := services.InitFirebase(firebasePath); err != nil {
			log.Printf("Firebase init failed, push notifications disabled: %v", err)
		}
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, push notifications disabled")
	}

	es := store.NewPostgresStore(db)

	router := mux.NewRouter()
	routes.CreateAuthRoutes(db, router)
	routes.CreateEngagementRoutes(es, db, router)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Engagement service listening on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal("Server failed:", err)
	}
}
