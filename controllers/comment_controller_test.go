package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogicum/api-go/models"
)

func TestAddComment(t *testing.T) {
	r, db := newTestApp(t)

	author := createUser(t, db, "alice")
	reader := createUser(t, db, "bob")
	travel := createCategory(t, db, "travel", true)
	post := createPost(t, db, author, travel, "discussed", time.Now().Add(-time.Hour), true)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), sessionFor(t, reader), map[string]interface{}{
		"text": "great trip",
	})
	assertRedirect(t, w, fmt.Sprintf("/api/posts/%d", post.ID))

	var comment models.Comment
	require.NoError(t, db.First(&comment, "post_id = ?", post.ID).Error)
	assert.Equal(t, "great trip", comment.Text)
	assert.Equal(t, reader.ID, comment.AuthorID)
}

func TestAddCommentWithEmptyTextIsDroppedSilently(t *testing.T) {
	r, db := newTestApp(t)

	author := createUser(t, db, "alice")
	reader := createUser(t, db, "bob")
	travel := createCategory(t, db, "travel", true)
	post := createPost(t, db, author, travel, "discussed", time.Now().Add(-time.Hour), true)

	for _, body := range []map[string]interface{}{
		{"text": ""},
		{},
	} {
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), sessionFor(t, reader), body)
		assertRedirect(t, w, fmt.Sprintf("/api/posts/%d", post.ID))
	}

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)
}

func TestAddCommentToMissingPost(t *testing.T) {
	r, db := newTestApp(t)
	reader := createUser(t, db, "bob")

	w := doJSON(t, r, http.MethodPost, "/api/posts/999/comments", sessionFor(t, reader), map[string]interface{}{
		"text": "into the void",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddCommentRequiresAuthentication(t *testing.T) {
	r, db := newTestApp(t)

	author := createUser(t, db, "alice")
	travel := createCategory(t, db, "travel", true)
	post := createPost(t, db, author, travel, "discussed", time.Now().Add(-time.Hour), true)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), "", map[string]interface{}{
		"text": "anonymous",
	})
	assertRedirect(t, w, "/login")
}

func TestEditComment(t *testing.T) {
	r, db := newTestApp(t)

	author := createUser(t, db, "alice")
	travel := createCategory(t, db, "travel", true)
	post := createPost(t, db, author, travel, "discussed", time.Now().Add(-time.Hour), true)
	comment := createComment(t, db, post, author, "first draft")

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/posts/%d/comments/%d", post.ID, comment.ID), sessionFor(t, author), map[string]interface{}{
		"text": "second draft",
	})
	assertRedirect(t, w, fmt.Sprintf("/api/posts/%d", post.ID))

	var stored models.Comment
	require.NoError(t, db.First(&stored, comment.ID).Error)
	assert.Equal(t, "second draft", stored.Text)
}

func TestEditCommentByNonOwnerIsNotFound(t *testing.T) {
	r, db := newTestApp(t)

	author := createUser(t, db, "alice")
	intruder := createUser(t, db, "bob")
	travel := createCategory(t, db, "travel", true)
	post := createPost(t, db, author, travel, "discussed", time.Now().Add(-time.Hour), true)
	comment := createComment(t, db, post, author, "mine")

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/posts/%d/comments/%d", post.ID, comment.ID), sessionFor(t, intruder), map[string]interface{}{
		"text": "hijacked",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var stored models.Comment
	require.NoError(t, db.First(&stored, comment.ID).Error)
	assert.Equal(t, "mine", stored.Text)
}

func TestDeleteCommentConfirmationThenDelete(t *testing.T) {
	r, db := newTestApp(t)

	author := createUser(t, db, "alice")
	travel := createCategory(t, db, "travel", true)
	post := createPost(t, db, author, travel, "discussed", time.Now().Add(-time.Hour), true)
	comment := createComment(t, db, post, author, "regretted")

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/posts/%d/comments/%d/delete", post.ID, comment.ID), sessionFor(t, author), nil)
	require.Equal(t, http.StatusOK, w.Code)
	preview := decodeBody(t, w)["comment"].(map[string]interface{})
	assert.Equal(t, "regretted", preview["text"])

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(1), count, "confirmation must not delete")

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/posts/%d/comments/%d", post.ID, comment.ID), sessionFor(t, author), nil)
	assertRedirect(t, w, fmt.Sprintf("/api/posts/%d", post.ID))

	db.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteCommentByNonOwnerIsNotFound(t *testing.T) {
	r, db := newTestApp(t)

	author := createUser(t, db, "alice")
	intruder := createUser(t, db, "bob")
	travel := createCategory(t, db, "travel", true)
	post := createPost(t, db, author, travel, "discussed", time.Now().Add(-time.Hour), true)
	comment := createComment(t, db, post, author, "kept")

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/posts/%d/comments/%d", post.ID, comment.ID), sessionFor(t, intruder), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCommentUnderWrongPostIsNotFound(t *testing.T) {
	r, db := newTestApp(t)

	author := createUser(t, db, "alice")
	travel := createCategory(t, db, "travel", true)
	post := createPost(t, db, author, travel, "first", time.Now().Add(-time.Hour), true)
	other := createPost(t, db, author, travel, "second", time.Now().Add(-time.Hour), true)
	comment := createComment(t, db, post, author, "attached to first")

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/posts/%d/comments/%d", other.ID, comment.ID), sessionFor(t, author), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
