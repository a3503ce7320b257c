package blog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"blogicum/accounts"
	"blogicum/models"
)

// Every listing context shows ten posts per page.
const pageSize = 10

type commentTally struct {
	PostID uint
	Total  int64
}

// fetchFeed applies the shared listing rules to a prepared query: natural
// post ordering, offset pagination and comment-count annotation. Pages out
// of range come back as an empty slice, not an error. One extra row is
// fetched to tell whether a further page exists.
func (b *BlogModule) fetchFeed(tx *gorm.DB, page int) ([]models.Post, bool, error) {
	if page < 1 {
		page = 1
	}

	var posts []models.Post
	err := tx.
		Preload("Author").Preload("Category").Preload("Location").
		Order("posts.pub_date DESC, posts.created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize + 1).
		Find(&posts).Error
	if err != nil {
		return nil, false, err
	}

	hasNext := len(posts) > pageSize
	if hasNext {
		posts = posts[:pageSize]
	}

	if err := b.annotateCommentCounts(posts); err != nil {
		return nil, false, err
	}
	return posts, hasNext, nil
}

func (b *BlogModule) annotateCommentCounts(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := lo.Map(posts, func(p models.Post, _ int) uint { return p.ID })

	var tallies []commentTally
	err := b.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&tallies).Error
	if err != nil {
		return err
	}

	counts := lo.SliceToMap(tallies, func(t commentTally) (uint, int64) {
		return t.PostID, t.Total
	})
	for i := range posts {
		posts[i].CommentCount = counts[posts[i].ID]
	}
	return nil
}

// homeFeed lists publicly visible posts across the whole site.
func (b *BlogModule) homeFeed(now time.Time, page int) ([]models.Post, bool, error) {
	return b.fetchFeed(b.publicPosts(now), page)
}

// categoryFeed lists the published, already-due posts of one public
// category. An unknown or unpublished slug is a not-found condition.
func (b *BlogModule) categoryFeed(slug string, now time.Time, page int) (*models.Category, []models.Post, bool, error) {
	var category models.Category
	err := b.db.Where("slug = ? AND is_published = ?", slug, true).First(&category).Error
	if err != nil {
		return nil, nil, false, err
	}

	tx := b.db.Model(&models.Post{}).Where("posts.category_id = ?", category.ID)
	tx = filterScheduled(now)(tx)

	posts, hasNext, err := b.fetchFeed(tx, page)
	return &category, posts, hasNext, err
}

// profileFeed lists every post by one author, drafts and future-dated
// posts included. The public profile page intentionally applies no
// visibility filtering, whoever is looking at it.
func (b *BlogModule) profileFeed(username string, page int) (*models.User, []models.Post, bool, error) {
	var author models.User
	err := b.db.Where("username = ?", username).First(&author).Error
	if err != nil {
		return nil, nil, false, err
	}

	tx := b.db.Model(&models.Post{}).Where("posts.author_id = ?", author.ID)
	posts, hasNext, err := b.fetchFeed(tx, page)
	return &author, posts, hasNext, err
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (b *BlogModule) index(c *gin.Context) {
	page := pageParam(c)

	posts, hasNext, err := b.homeFeed(time.Now(), page)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "blog_error.html", gin.H{"error": "Error loading posts"})
		return
	}

	c.HTML(http.StatusOK, "blog_index.html", gin.H{
		"posts":    posts,
		"page":     page,
		"prevPage": page - 1,
		"nextPage": page + 1,
		"hasPrev":  page > 1,
		"hasNext":  hasNext,
	})
}

func (b *BlogModule) categoryPosts(c *gin.Context) {
	slug := c.Param("slug")
	page := pageParam(c)

	category, posts, hasNext, err := b.categoryFeed(slug, time.Now(), page)
	if err == gorm.ErrRecordNotFound {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Category not found"})
		return
	}
	if err != nil {
		c.HTML(http.StatusInternalServerError, "blog_error.html", gin.H{"error": "Error loading posts"})
		return
	}

	c.HTML(http.StatusOK, "blog_category.html", gin.H{
		"category": category,
		"posts":    posts,
		"page":     page,
		"prevPage": page - 1,
		"nextPage": page + 1,
		"hasPrev":  page > 1,
		"hasNext":  hasNext,
	})
}

func (b *BlogModule) profile(c *gin.Context) {
	username := c.Param("username")
	page := pageParam(c)

	author, posts, hasNext, err := b.profileFeed(username, page)
	if err == gorm.ErrRecordNotFound {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		c.HTML(http.StatusInternalServerError, "blog_error.html", gin.H{"error": "Error loading posts"})
		return
	}

	c.HTML(http.StatusOK, "blog_profile.html", gin.H{
		"profile":  author,
		"posts":    posts,
		"page":     page,
		"prevPage": page - 1,
		"nextPage": page + 1,
		"hasPrev":  page > 1,
		"hasNext":  hasNext,
		"isOwner":  accounts.SessionUserID(c) == author.ID,
	})
}
