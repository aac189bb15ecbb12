package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"communekit.com/project-community-app/models"
	"communekit.com/project-community-app/services"
	"communekit.com/project-community-app/store"
)

const (
	defaultCommentLimit = 10
	maxCommentLimit     = 50
	maxCommentLength    = 500
)

func contentKey(r *http.Request) (models.ContentKind, int, bool) {
	vars := mux.Vars(r)
	kind := models.ContentKind(vars["kind"])
	if !kind.Valid() {
		return "", 0, false
	}
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		return "", 0, false
	}
	return kind, id, true
}

// SetLikeCount overwrites an item's denormalized like counter with the
// absolute value the client computed. Clients own the arithmetic; the
// server just refuses negatives.
func SetLikeCount(es store.EngagementStore, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, id, ok := contentKey(r)
		if !ok {
			http.Error(w, "Invalid content kind or id", http.StatusBadRequest)
			return
		}

		var req models.SetCountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Count < 0 {
			http.Error(w, "Count must not be negative", http.StatusBadRequest)
			return
		}

		item, err := es.GetItem(r.Context(), kind, id)
		if err == store.ErrNotFound {
			http.Error(w, "Content not found", http.StatusNotFound)
			return
		} else if err != nil {
			http.Error(w, "Database query failed", http.StatusInternalServerError)
			log.Println("SetLikeCount lookup error:", err)
			return
		}

		if err := es.SetLikeCount(r.Context(), kind, id, req.Count); err != nil {
			http.Error(w, "Failed to update like count", http.StatusInternalServerError)
			log.Println("SetLikeCount error:", err)
			return
		}

		if db != nil && req.Count > item.LikeCount {
			go services.NotifyOwnerOfLike(db, item)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"like_count": req.Count})
	}
}

// GetCommentsPage returns one newest-first offset window of an item's
// comments plus the exact total, so clients can page incrementally.
func GetCommentsPage(es store.EngagementStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, id, ok := contentKey(r)
		if !ok {
			http.Error(w, "Invalid content kind or id", http.StatusBadRequest)
			return
		}

		offset := 0
		if s := r.URL.Query().Get("offset"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v < 0 {
				http.Error(w, "Invalid offset", http.StatusBadRequest)
				return
			}
			offset = v
		}

		limit := defaultCommentLimit
		if s := r.URL.Query().Get("limit"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v < 1 {
				http.Error(w, "Invalid limit", http.StatusBadRequest)
				return
			}
			if v > maxCommentLimit {
				v = maxCommentLimit
			}
			limit = v
		}

		page, err := es.FetchCommentsPage(r.Context(), kind, id, offset, limit)
		if err != nil {
			http.Error(w, "Failed to fetch comments", http.StatusInternalServerError)
			log.Println("GetCommentsPage error:", err)
			return
		}
		if page.Rows == nil {
			page.Rows = []models.Comment{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}
}

func CreateComment(es store.EngagementStore, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, id, ok := contentKey(r)
		if !ok {
			http.Error(w, "Invalid content kind or id", http.StatusBadRequest)
			return
		}

		var req models.CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Text) == "" {
			http.Error(w, "Comment text is required", http.StatusBadRequest)
			return
		}
		if len(req.Text) > maxCommentLength {
			http.Error(w, "Comment must be at most 500 characters", http.StatusBadRequest)
			return
		}
		if req.AuthorDisplayName == "" {
			req.AuthorDisplayName = "Someone"
		}

		comment, err := es.InsertComment(r.Context(), kind, id, req.AuthorDisplayName, req.Text)
		if err != nil {
			http.Error(w, "Failed to create comment", http.StatusInternalServerError)
			log.Println("CreateComment error:", err)
			return
		}

		if db != nil {
			if item, err := es.GetItem(r.Context(), kind, id); err == nil {
				go services.NotifyOwnerOfComment(db, item, req.AuthorDisplayName, req.Text)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(comment)
	}
}

func SetCommentCount(es store.EngagementStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, id, ok := contentKey(r)
		if !ok {
			http.Error(w, "Invalid content kind or id", http.StatusBadRequest)
			return
		}

		var req models.SetCountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Count < 0 {
			http.Error(w, "Count must not be negative", http.StatusBadRequest)
			return
		}

		err := es.SetCommentCount(r.Context(), kind, id, req.Count)
		if err == store.ErrNotFound {
			http.Error(w, "Content not found", http.StatusNotFound)
			return
		} else if err != nil {
			http.Error(w, "Failed to update comment count", http.StatusInternalServerError)
			log.Println("SetCommentCount error:", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"comment_count": req.Count})
	}
}
