package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"communekit.com/project-community-app/models"
)

func Register(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		u.Username = strings.TrimSpace(u.Username)
		if u.Username == "" || u.Password == "" || u.Email == "" {
			http.Error(w, "username, email and password are required", http.StatusBadRequest)
			return
		}
		if u.DisplayName == "" {
			u.DisplayName = u.Username
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			log.Println("Register hash error:", err)
			return
		}

		err = db.QueryRow(`
			INSERT INTO users (username, display_name, email, password)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			u.Username, u.DisplayName, u.Email, string(hashed),
		).Scan(&u.ID, &u.CreatedAt)
		if err != nil {
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			log.Println("Register error:", err)
			return
		}

		u.Password = ""
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(u)
	}
}

func Login(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var u models.User
		err := db.QueryRow(`
			SELECT id, username, display_name, email, password, created_at
			FROM users WHERE username = $1`,
			creds.Username,
		).Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.Password, &u.CreatedAt)
		if err == sql.ErrNoRows {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		} else if err != nil {
			http.Error(w, "Database query failed", http.StatusInternalServerError)
			log.Println("Login error:", err)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(creds.Password)) != nil {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		claims := jwt.MapClaims{
			"user_id": u.ID,
			"exp":     time.Now().Add(30 * 24 * time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			http.Error(w, "Failed to issue token", http.StatusInternalServerError)
			log.Println("Login token error:", err)
			return
		}

		u.Password = ""
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": signed,
			"user":  u,
		})
	}
}
