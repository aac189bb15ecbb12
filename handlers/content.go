package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"communekit.com/project-community-app/models"
	"communekit.com/project-community-app/store"
)

func GetContent(es store.EngagementStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, id, ok := contentKey(r)
		if !ok {
			http.Error(w, "Invalid content kind or id", http.StatusBadRequest)
			return
		}

		item, err := es.GetItem(r.Context(), kind, id)
		if err == store.ErrNotFound {
			http.Error(w, "Content not found", http.StatusNotFound)
			return
		} else if err != nil {
			http.Error(w, "Database query failed", http.StatusInternalServerError)
			log.Println("GetContent error:", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(item)
	}
}

func ListContents(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := models.ContentKind(r.URL.Query().Get("kind"))
		if !kind.Valid() {
			http.Error(w, "kind must be project or article", http.StatusBadRequest)
			return
		}

		rows, err := db.Query(`
			SELECT id, kind, title, body, COALESCE(author_id, 0),
			       like_count, comment_count, created_at
			FROM contents
			WHERE kind = $1
			ORDER BY created_at DESC`,
			kind)
		if err != nil {
			http.Error(w, "Database query failed", http.StatusInternalServerError)
			log.Println("ListContents error:", err)
			return
		}
		defer rows.Close()

		var items []models.ContentItem
		for rows.Next() {
			var item models.ContentItem
			if err := rows.Scan(&item.ID, &item.Kind, &item.Title, &item.Body,
				&item.AuthorID, &item.LikeCount, &item.CommentCount, &item.CreatedAt); err != nil {
				http.Error(w, "Error scanning contents", http.StatusInternalServerError)
				log.Println("ListContents scan error:", err)
				return
			}
			items = append(items, item)
		}
		if err := rows.Err(); err != nil {
			http.Error(w, "Error iterating contents", http.StatusInternalServerError)
			log.Println("ListContents rows error:", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}

func CreateContent(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item models.ContentItem
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if !item.Kind.Valid() {
			http.Error(w, "kind must be project or article", http.StatusBadRequest)
			return
		}
		if item.Title == "" {
			http.Error(w, "title is required", http.StatusBadRequest)
			return
		}

		err := db.QueryRow(`
			INSERT INTO contents (kind, title, body, author_id)
			VALUES ($1, $2, $3, NULLIF($4, 0))
			RETURNING id, like_count, comment_count, created_at`,
			item.Kind, item.Title, item.Body, item.AuthorID,
		).Scan(&item.ID, &item.LikeCount, &item.CommentCount, &item.CreatedAt)
		if err != nil {
			http.Error(w, "Failed to create content", http.StatusInternalServerError)
			log.Println("CreateContent error:", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(item)
	}
}
