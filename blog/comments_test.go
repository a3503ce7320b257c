package blog

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"blogicum/models"
)

func TestAddComment(t *testing.T) {
	db := setupTestDB()
	author := createTestUser(db, "author")
	reader := createTestUser(db, "reader")
	post := createTestPost(db, author, nil, true, time.Now().Add(-time.Hour))
	router := setupTestRouter(db, reader.ID)

	w := postForm(router, fmt.Sprintf("/posts/%d/comment", post.ID), url.Values{
		"text": {"Nice post!"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), w.Header().Get("Location"))

	var comment models.Comment
	assert.NoError(t, db.First(&comment).Error)
	assert.Equal(t, reader.ID, comment.AuthorID)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, "Nice post!", comment.Text)
}

func TestAddComment_RequiresAuth(t *testing.T) {
	db := setupTestDB()
	author := createTestUser(db, "author")
	post := createTestPost(db, author, nil, true, time.Now().Add(-time.Hour))
	router := setupTestRouter(db, 0)

	w := postForm(router, fmt.Sprintf("/posts/%d/comment", post.ID), url.Values{
		"text": {"anon"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAddComment_UnknownPost(t *testing.T) {
	db := setupTestDB()
	reader := createTestUser(db, "reader")
	router := setupTestRouter(db, reader.ID)

	w := postForm(router, "/posts/999/comment", url.Values{"text": {"hi"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetComment_ScopedToPost(t *testing.T) {
	db := setupTestDB()
	b := NewBlogModule(db)

	author := createTestUser(db, "author")
	postA := createTestPost(db, author, nil, true, time.Now())
	postB := createTestPost(db, author, nil, true, time.Now())
	comment := createTestComment(db, author, postA)

	_, err := b.getComment(postB.ID, comment.ID)

	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestUpdateComment_ByOwner(t *testing.T) {
	db := setupTestDB()
	author := createTestUser(db, "author")
	reader := createTestUser(db, "reader")
	post := createTestPost(db, author, nil, true, time.Now().Add(-time.Hour))
	comment := createTestComment(db, reader, post)
	router := setupTestRouter(db, reader.ID)

	w := postForm(router, fmt.Sprintf("/posts/%d/edit_comment/%d", post.ID, comment.ID), url.Values{
		"text": {"edited"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), w.Header().Get("Location"))

	var reloaded models.Comment
	db.First(&reloaded, comment.ID)
	assert.Equal(t, "edited", reloaded.Text)
}

func TestUpdateComment_ByNonOwner_SilentlyRedirects(t *testing.T) {
	db := setupTestDB()
	author := createTestUser(db, "author")
	reader := createTestUser(db, "reader")
	post := createTestPost(db, author, nil, true, time.Now().Add(-time.Hour))
	comment := createTestComment(db, reader, post)
	router := setupTestRouter(db, author.ID) // post author, but not the comment author

	w := postForm(router, fmt.Sprintf("/posts/%d/edit_comment/%d", post.ID, comment.ID), url.Values{
		"text": {"hijacked"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), w.Header().Get("Location"))

	var reloaded models.Comment
	db.First(&reloaded, comment.ID)
	assert.Equal(t, "A comment", reloaded.Text)
}

func TestDeleteComment_ByOwner(t *testing.T) {
	db := setupTestDB()
	author := createTestUser(db, "author")
	reader := createTestUser(db, "reader")
	post := createTestPost(db, author, nil, true, time.Now().Add(-time.Hour))
	comment := createTestComment(db, reader, post)
	router := setupTestRouter(db, reader.ID)

	w := postForm(router, fmt.Sprintf("/posts/%d/delete_comment/%d", post.ID, comment.ID), url.Values{})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), w.Header().Get("Location"))

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteComment_ByNonOwner_CommentSurvives(t *testing.T) {
	db := setupTestDB()
	author := createTestUser(db, "author")
	reader := createTestUser(db, "reader")
	post := createTestPost(db, author, nil, true, time.Now().Add(-time.Hour))
	comment := createTestComment(db, reader, post)
	router := setupTestRouter(db, author.ID)

	w := postForm(router, fmt.Sprintf("/posts/%d/delete_comment/%d", post.ID, comment.ID), url.Values{})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), w.Header().Get("Location"))

	var count int64
	db.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
