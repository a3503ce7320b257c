package blog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"blogicum/models"
)

// datetime-local inputs submit in this layout
const pubDateLayout = "2006-01-02T15:04"

func (b *BlogModule) formChoices() ([]models.Category, []models.Location) {
	var categories []models.Category
	b.db.Where("is_published = ?", true).Order("title ASC").Find(&categories)

	var locations []models.Location
	b.db.Where("is_published = ?", true).Order("name ASC").Find(&locations)

	return categories, locations
}

// applyPostForm copies the submitted fields onto the post. Authorship and
// created_at are never taken from input.
func applyPostForm(c *gin.Context, post *models.Post) {
	post.Title = c.PostForm("title")
	post.Text = c.PostForm("text")
	post.Image = c.PostForm("image")
	post.IsPublished = c.PostForm("is_published") == "on" || c.PostForm("is_published") == "1"

	if raw := c.PostForm("pub_date"); raw != "" {
		if t, err := time.Parse(pubDateLayout, raw); err == nil {
			post.PubDate = t
		} else if t, err := time.Parse("2006-01-02 15:04", raw); err == nil {
			post.PubDate = t
		}
	}
	if post.PubDate.IsZero() {
		post.PubDate = time.Now()
	}

	post.CategoryID = optionalIDParam(c, "category_id")
	post.LocationID = optionalIDParam(c, "location_id")
}

func optionalIDParam(c *gin.Context, field string) *int {
	raw := c.PostForm(field)
	if raw == "" || raw == "0" {
		return nil
	}
	id, err := parseID(raw)
	if err != nil {
		return nil
	}
	v := int(id)
	return &v
}

func (b *BlogModule) authorUsername(userID int) string {
	var user models.User
	if err := b.db.First(&user, userID).Error; err != nil {
		return ""
	}
	return user.Username
}

func (b *BlogModule) newPost(c *gin.Context) {
	categories, locations := b.formChoices()

	c.HTML(http.StatusOK, "blog_post_form.html", gin.H{
		"categories": categories,
		"locations":  locations,
	})
}

func (b *BlogModule) createPost(c *gin.Context) {
	actorID := c.GetInt("user_id")

	post := models.Post{
		AuthorID:  actorID,
		CreatedAt: time.Now(),
	}
	applyPostForm(c, &post)

	if err := b.db.Create(&post).Error; err != nil {
		categories, locations := b.formChoices()
		c.HTML(http.StatusInternalServerError, "blog_post_form.html", gin.H{
			"error":      "Error creating post",
			"post":       post,
			"categories": categories,
			"locations":  locations,
		})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+b.authorUsername(actorID))
}

func (b *BlogModule) editPost(c *gin.Context) {
	actorID := c.GetInt("user_id")

	postID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Post not found"})
		return
	}

	post, err := b.getPost(postID)
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Post not found"})
		return
	}

	if !mayMutate(actorID, post.AuthorID) {
		c.Redirect(http.StatusFound, postDetailPath(post.ID))
		return
	}

	categories, locations := b.formChoices()
	c.HTML(http.StatusOK, "blog_post_form.html", gin.H{
		"post":       post,
		"categories": categories,
		"locations":  locations,
	})
}

func (b *BlogModule) updatePost(c *gin.Context) {
	actorID := c.GetInt("user_id")

	postID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Post not found"})
		return
	}

	post, err := b.getPost(postID)
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Post not found"})
		return
	}

	if !mayMutate(actorID, post.AuthorID) {
		c.Redirect(http.StatusFound, postDetailPath(post.ID))
		return
	}

	applyPostForm(c, post)

	// the post carries preloaded Author/Category/Location; saving those
	// would write the old foreign keys back over the submitted ones
	if err := b.db.Omit(clause.Associations).Save(post).Error; err != nil {
		categories, locations := b.formChoices()
		c.HTML(http.StatusInternalServerError, "blog_post_form.html", gin.H{
			"error":      "Error updating post",
			"post":       post,
			"categories": categories,
			"locations":  locations,
		})
		return
	}

	c.Redirect(http.StatusFound, postDetailPath(post.ID))
}

func (b *BlogModule) confirmDeletePost(c *gin.Context) {
	actorID := c.GetInt("user_id")

	postID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Post not found"})
		return
	}

	post, err := b.getPost(postID)
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Post not found"})
		return
	}

	if !mayMutate(actorID, post.AuthorID) {
		c.Redirect(http.StatusFound, postDetailPath(post.ID))
		return
	}

	c.HTML(http.StatusOK, "blog_post_confirm.html", gin.H{"post": post})
}

func (b *BlogModule) deletePost(c *gin.Context) {
	actorID := c.GetInt("user_id")

	postID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Post not found"})
		return
	}

	post, err := b.getPost(postID)
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Post not found"})
		return
	}

	if !mayMutate(actorID, post.AuthorID) {
		c.Redirect(http.StatusFound, postDetailPath(post.ID))
		return
	}

	if err := b.RemovePost(post.ID); err != nil {
		c.HTML(http.StatusInternalServerError, "blog_error.html", gin.H{"error": "Error deleting post"})
		return
	}

	// the post is gone, so land on the author's profile instead
	c.Redirect(http.StatusFound, "/profile/"+post.Author.Username)
}

func postDetailPath(postID uint) string {
	return "/posts/" + strconv.Itoa(int(postID))
}
