package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communekit.com/project-community-app/models"
	"communekit.com/project-community-app/store"
)

func newTestRouter(es store.EngagementStore) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/contents/{kind}/{id}", GetContent(es)).Methods("GET")
	router.HandleFunc("/contents/{kind}/{id}/like-count", SetLikeCount(es, nil)).Methods("PUT")
	router.HandleFunc("/contents/{kind}/{id}/comments", GetCommentsPage(es)).Methods("GET")
	router.HandleFunc("/contents/{kind}/{id}/comments", CreateComment(es, nil)).Methods("POST")
	router.HandleFunc("/contents/{kind}/{id}/comment-count", SetCommentCount(es)).Methods("PUT")
	return router
}

func seedStore() *store.MemoryStore {
	s := store.NewMemoryStore()
	s.PutItem(&models.ContentItem{ID: 1, Kind: models.KindProject, Title: "A project", LikeCount: 4, CommentCount: 0})
	return s
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestEngagementHandlers(t *testing.T) {
	t.Run("get content item", func(t *testing.T) {
		router := newTestRouter(seedStore())

		rec := doJSON(t, router, "GET", "/contents/project/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var item models.ContentItem
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&item))
		assert.Equal(t, 4, item.LikeCount)

		rec = doJSON(t, router, "GET", "/contents/project/99", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doJSON(t, router, "GET", "/contents/recipe/1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("set like count overwrites the counter", func(t *testing.T) {
		s := seedStore()
		router := newTestRouter(s)

		rec := doJSON(t, router, "PUT", "/contents/project/1/like-count", models.SetCountRequest{Count: 5})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, router, "GET", "/contents/project/1", nil)
		var item models.ContentItem
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&item))
		assert.Equal(t, 5, item.LikeCount)
	})

	t.Run("negative counts are rejected", func(t *testing.T) {
		router := newTestRouter(seedStore())

		rec := doJSON(t, router, "PUT", "/contents/project/1/like-count", models.SetCountRequest{Count: -1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doJSON(t, router, "PUT", "/contents/project/1/comment-count", models.SetCountRequest{Count: -3})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("comment pages honor offset and limit", func(t *testing.T) {
		s := seedStore()
		router := newTestRouter(s)

		for i := 1; i <= 5; i++ {
			rec := doJSON(t, router, "POST", "/contents/project/1/comments",
				models.CreateCommentRequest{AuthorDisplayName: "Dana", Text: fmt.Sprintf("comment %d", i)})
			require.Equal(t, http.StatusCreated, rec.Code)
		}

		rec := doJSON(t, router, "GET", "/contents/project/1/comments?offset=0&limit=2", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var page models.CommentPage
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
		assert.Equal(t, 5, page.TotalCount)
		require.Len(t, page.Rows, 2)
		assert.Equal(t, 5, page.Rows[0].ID, "newest comment first")

		rec = doJSON(t, router, "GET", "/contents/project/1/comments?offset=4&limit=2", nil)
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
		assert.Equal(t, 5, page.TotalCount)
		assert.Len(t, page.Rows, 1)

		rec = doJSON(t, router, "GET", "/contents/project/1/comments?offset=-1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("comment validation", func(t *testing.T) {
		router := newTestRouter(seedStore())

		rec := doJSON(t, router, "POST", "/contents/project/1/comments",
			models.CreateCommentRequest{AuthorDisplayName: "Dana", Text: "   "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		long := make([]byte, maxCommentLength+1)
		for i := range long {
			long[i] = 'x'
		}
		rec = doJSON(t, router, "POST", "/contents/project/1/comments",
			models.CreateCommentRequest{AuthorDisplayName: "Dana", Text: string(long)})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// The API client and the handlers speak the same dialect: a presenter
// running against a served memory store behaves like one bound to the
// store directly.
func TestAPIClientRoundTrip(t *testing.T) {
	s := seedStore()
	server := httptest.NewServer(newTestRouter(s))
	defer server.Close()

	client := store.NewAPIClient(server.URL, "")
	ctx := context.Background()

	item, err := client.GetItem(ctx, models.KindProject, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, item.LikeCount)

	require.NoError(t, client.SetLikeCount(ctx, models.KindProject, 1, 5))

	item, err = client.GetItem(ctx, models.KindProject, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, item.LikeCount)

	created, err := client.InsertComment(ctx, models.KindProject, 1, "Dana", "over the wire")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	require.NoError(t, client.SetCommentCount(ctx, models.KindProject, 1, 1))

	page, err := client.FetchCommentsPage(ctx, models.KindProject, 1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "over the wire", page.Rows[0].Text)

	_, err = client.GetItem(ctx, models.KindArticle, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
