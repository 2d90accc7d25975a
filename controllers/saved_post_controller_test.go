package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedPosts(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db)

	aToken, _ := registerAndLogin(t, router, "author")
	bToken, bID := registerAndLogin(t, router, "reader")
	postID := createPost(t, router, aToken, "Hello", "world")

	base := "/user/" + bID + "/savedPosts"
	var savedID string

	t.Run("save a post", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, base, bToken, map[string]string{"post_id": postID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		savedID = fmt.Sprintf("%v", decodeBody(t, w)["id"])
	})

	t.Run("duplicate save is rejected", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, base, bToken, map[string]string{"post_id": postID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("saving a missing post is 404", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, base, bToken, map[string]string{"post_id": "nope"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("owner can list", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, base, bToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("someone else cannot list", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, base, aToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("anonymous access is rejected", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, base, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("delete removes the bookmark", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, base+"/"+savedID, bToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("deleting an absent bookmark is 404", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, base+"/99999", bToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
