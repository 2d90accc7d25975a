package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glimpse-api/models"
)

func TestLikeLifecycle(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	aToken, _ := registerAndLogin(t, router, "userA")
	bToken, bID := registerAndLogin(t, router, "userB")
	postID := createPost(t, router, aToken, "Hello", "world")

	t.Run("like increments the counter", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/posts/"+postID+"/likes", bToken, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var post models.Post
		require.NoError(t, db.First(&post, "id = ?", postID).Error)
		assert.Equal(t, 1, post.NumPostLikes)
	})

	t.Run("second like is rejected and the counter stays put", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/posts/"+postID+"/likes", bToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already liked")

		var post models.Post
		require.NoError(t, db.First(&post, "id = ?", postID).Error)
		assert.Equal(t, 1, post.NumPostLikes)

		var rows int64
		db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&rows)
		assert.EqualValues(t, 1, rows)
	})

	t.Run("at most one like row per user and post", func(t *testing.T) {
		var rows int64
		db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, bID).Count(&rows)
		assert.EqualValues(t, 1, rows)
	})

	t.Run("likes are listable by anyone", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/posts/"+postID+"/likes", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unlike decrements the counter", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/posts/"+postID+"/likes", bToken, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		var post models.Post
		require.NoError(t, db.First(&post, "id = ?", postID).Error)
		assert.Zero(t, post.NumPostLikes)
	})

	t.Run("unlike without a like is 404", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/posts/"+postID+"/likes", bToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("like on a missing post is 404", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/posts/nope/likes", bToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("anonymous like is rejected", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/posts/"+postID+"/likes", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
