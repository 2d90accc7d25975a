package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glimpse-api/models"
)

func TestPostListing(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	token, _ := registerAndLogin(t, router, "author")
	createPost(t, router, token, "Hello", "world")

	t.Run("anonymous read is allowed", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/posts", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		data, ok := body["data"].([]interface{})
		require.True(t, ok)
		assert.Len(t, data, 1)
	})

	t.Run("anonymous create is rejected", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/posts", "", map[string]string{
			"title":   "nope",
			"content": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("anonymous retrieve is allowed", func(t *testing.T) {
		postID := createPost(t, router, token, "Second", "content")
		w := doJSON(router, http.MethodGet, "/posts/"+postID, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Second", decodeBody(t, w)["title"])
	})

	t.Run("missing post is 404", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/posts/does-not-exist", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreatePostValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	token, userID := registerAndLogin(t, router, "poster")

	t.Run("title too long", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/posts", token, map[string]string{
			"title":   "this title is far too long for a post",
			"content": "body",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("disallowed file extension", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/posts", token, map[string]string{
			"title":   "clip",
			"content": "body",
			"file":    "malware.exe",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("allowed file extension", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/posts", token, map[string]string{
			"title":   "clip",
			"content": "body",
			"file":    "ride.MP4",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("owner is the caller, not the payload", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/posts", token, map[string]string{
			"title":   "mine",
			"content": "body",
			"user_id": "someone-else",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, userID, decodeBody(t, w)["user_id"])
	})
}

func TestPostOwnership(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	ownerToken, _ := registerAndLogin(t, router, "owner")
	otherToken, _ := registerAndLogin(t, router, "other")
	postID := createPost(t, router, ownerToken, "Hello", "world")

	t.Run("non-owner update is forbidden", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, "/posts/"+postID, otherToken, map[string]string{
			"title": "hijack",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("non-owner delete is forbidden", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/posts/"+postID, otherToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("anonymous mutation needs authentication", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, "/posts/"+postID, "", map[string]string{"title": "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("owner can update", func(t *testing.T) {
		w := doJSON(router, http.MethodPatch, "/posts/"+postID, ownerToken, map[string]string{
			"title": "Edited",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Edited", decodeBody(t, w)["title"])
	})

	t.Run("owner can delete", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/posts/"+postID, ownerToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(router, http.MethodGet, "/posts/"+postID, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeletePostCascades(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	ownerToken, _ := registerAndLogin(t, router, "owner")
	fanToken, fanID := registerAndLogin(t, router, "fan")
	postID := createPost(t, router, ownerToken, "Hello", "world")

	w := doJSON(router, http.MethodPost, "/posts/"+postID+"/comments", fanToken, map[string]string{"content": "nice!"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(router, http.MethodPost, "/posts/"+postID+"/likes", fanToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(router, http.MethodPost, "/user/"+fanID+"/savedPosts", fanToken, map[string]string{"post_id": postID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodDelete, "/posts/"+postID, ownerToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var comments, likes, saved int64
	db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&comments)
	db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&likes)
	db.Model(&models.SavedPost{}).Where("post_id = ?", postID).Count(&saved)

	assert.Zero(t, comments)
	assert.Zero(t, likes)
	assert.Zero(t, saved)
}
