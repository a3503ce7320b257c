package blog

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogicum/models"
)

// getComment fetches a comment scoped to its parent post, so a comment id
// belonging to another post reads as not found.
func (b *BlogModule) getComment(postID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := b.db.Preload("Author").
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	return &comment, err
}

func (b *BlogModule) addComment(c *gin.Context) {
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

	text := c.PostForm("text")
	if text == "" {
		c.Redirect(http.StatusFound, postDetailPath(post.ID))
		return
	}

	comment := models.Comment{
		Text:      text,
		PostID:    post.ID,
		AuthorID:  actorID,
		CreatedAt: time.Now(),
	}

	if err := b.db.Create(&comment).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "blog_error.html", gin.H{"error": "Error adding comment"})
		return
	}

	c.Redirect(http.StatusFound, postDetailPath(post.ID))
}

func (b *BlogModule) editComment(c *gin.Context) {
	actorID := c.GetInt("user_id")

	postID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Post not found"})
		return
	}

	commentID, err := parseID(c.Param("commentID"))
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Comment not found"})
		return
	}

	comment, err := b.getComment(postID, commentID)
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Comment not found"})
		return
	}

	if !mayMutate(actorID, comment.AuthorID) {
		c.Redirect(http.StatusFound, postDetailPath(postID))
		return
	}

	c.HTML(http.StatusOK, "blog_comment_form.html", gin.H{"comment": comment})
}

func (b *BlogModule) updateComment(c *gin.Context) {
	actorID := c.GetInt("user_id")

	postID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Post not found"})
		return
	}

	commentID, err := parseID(c.Param("commentID"))
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Comment not found"})
		return
	}

	comment, err := b.getComment(postID, commentID)
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Comment not found"})
		return
	}

	if !mayMutate(actorID, comment.AuthorID) {
		c.Redirect(http.StatusFound, postDetailPath(postID))
		return
	}

	if text := c.PostForm("text"); text != "" {
		comment.Text = text
	}

	if err := b.db.Save(comment).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "blog_error.html", gin.H{"error": "Error updating comment"})
		return
	}

	c.Redirect(http.StatusFound, postDetailPath(postID))
}

func (b *BlogModule) confirmDeleteComment(c *gin.Context) {
	actorID := c.GetInt("user_id")

	postID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Post not found"})
		return
	}

	commentID, err := parseID(c.Param("commentID"))
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Comment not found"})
		return
	}

	comment, err := b.getComment(postID, commentID)
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Comment not found"})
		return
	}

	if !mayMutate(actorID, comment.AuthorID) {
		c.Redirect(http.StatusFound, postDetailPath(postID))
		return
	}

	c.HTML(http.StatusOK, "blog_comment_confirm.html", gin.H{"comment": comment})
}

func (b *BlogModule) deleteComment(c *gin.Context) {
	actorID := c.GetInt("user_id")

	postID, err := parseID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Post not found"})
		return
	}

	commentID, err := parseID(c.Param("commentID"))
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Comment not found"})
		return
	}

	comment, err := b.getComment(postID, commentID)
	if err != nil {
		c.HTML(http.StatusNotFound, "blog_error.html", gin.H{"error": "Comment not found"})
		return
	}

	if !mayMutate(actorID, comment.AuthorID) {
		c.Redirect(http.StatusFound, postDetailPath(postID))
		return
	}

	if err := b.db.Delete(comment).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "blog_error.html", gin.H{"error": "Error deleting comment"})
		return
	}

	c.Redirect(http.StatusFound, postDetailPath(postID))
}
