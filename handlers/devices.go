package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
)

// RegisterDeviceToken stores an FCM token for the authenticated user so
// the engagement service can notify content owners of likes and
// comments.
func RegisterDeviceToken(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID int    `json:"user_id"`
			Token  string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.UserID == 0 || req.Token == "" {
			http.Error(w, "user_id and token are required", http.StatusBadRequest)
			return
		}

		_, err := db.Exec(`
			INSERT INTO fcm_tokens (user_id, token)
			VALUES ($1, $2)
			ON CONFLICT (user_id, token) DO NOTHING`,
			req.UserID, req.Token)
		if err != nil {
			http.Error(w, "Failed to register token", http.StatusInternalServerError)
			log.Println("RegisterDeviceToken error:", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Token registered"})
	}
}

func UnregisterDeviceToken(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		_, err := db.Exec(`DELETE FROM fcm_tokens WHERE token = $1`, req.Token)
		if err != nil {
			http.Error(w, "Failed to remove token", http.StatusInternalServerError)
			log.Println("UnregisterDeviceToken error:", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Token removed"})
	}
}
