package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"blogicum/models"
)

func TestRemoveCategory_NullifiesPostsAndTheyStayVisible(t *testing.T) {
	db := setupTestDB()
	b := NewBlogModule(db)

	author := createTestUser(db, "author")
	category := createTestCategory(db, "travel", true)
	now := time.Now()
	post := createTestPost(db, author, category, true, now.Add(-time.Hour))

	assert.NoError(t, b.RemoveCategory(category.ID))

	var reloaded models.Post
	assert.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Nil(t, reloaded.CategoryID)

	var categoryCount int64
	db.Model(&models.Category{}).Count(&categoryCount)
	assert.Equal(t, int64(0), categoryCount)

	// with no category attached, the category visibility check no longer applies
	posts, _, err := b.homeFeed(now, 1)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
}

func TestRemoveLocation_NullifiesPosts(t *testing.T) {
	db := setupTestDB()
	b := NewBlogModule(db)

	author := createTestUser(db, "author")
	location := createTestLocation(db, "North Pole", true)
	post := createTestPost(db, author, nil, true, time.Now())
	post.LocationID = &location.ID
	db.Save(post)

	assert.NoError(t, b.RemoveLocation(location.ID))

	var reloaded models.Post
	assert.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Nil(t, reloaded.LocationID)

	var locationCount int64
	db.Model(&models.Location{}).Count(&locationCount)
	assert.Equal(t, int64(0), locationCount)
}

func TestRemoveUser_CascadesPostsAndComments(t *testing.T) {
	db := setupTestDB()
	b := NewBlogModule(db)

	leaving := createTestUser(db, "leaving")
	staying := createTestUser(db, "staying")
	now := time.Now()

	ownPost := createTestPost(db, leaving, nil, true, now)
	otherPost := createTestPost(db, staying, nil, true, now)

	createTestComment(db, leaving, otherPost) // authored elsewhere, goes away
	createTestComment(db, staying, ownPost)   // on the removed post, goes away
	kept := createTestComment(db, staying, otherPost)

	assert.NoError(t, b.RemoveUser(leaving.ID))

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	assert.Equal(t, int64(1), userCount)

	var postIDs []uint
	db.Model(&models.Post{}).Pluck("id", &postIDs)
	assert.Equal(t, []uint{otherPost.ID}, postIDs)

	var commentIDs []uint
	db.Model(&models.Comment{}).Pluck("id", &commentIDs)
	assert.Equal(t, []uint{kept.ID}, commentIDs)
}
