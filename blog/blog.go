package blog

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"

	"blogicum/accounts"
	"blogicum/models"
)

type BlogModule struct {
	db *gorm.DB
}

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // allow raw HTML passthrough in Markdown
	),
)

func NewBlogModule(db *gorm.DB) *BlogModule {
	return &BlogModule{db: db}
}

func (b *BlogModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", b.index)
	router.GET("/category/:slug", b.categoryPosts)
	router.GET("/profile/:username", b.profile)

	posts := router.Group("/posts")
	{
		posts.GET("/:id", b.postDetail)

		authed := posts.Group("", accounts.RequireAuth)
		{
			authed.GET("/create", b.newPost)
			authed.POST("/create", b.createPost)
			authed.GET("/:id/edit", b.editPost)
			authed.POST("/:id/edit", b.updatePost)
			authed.GET("/:id/delete", b.confirmDeletePost)
			authed.POST("/:id/delete", b.deletePost)
			authed.POST("/:id/comment", b.addComment)
			authed.GET("/:id/edit_comment/:commentID", b.editComment)
			authed.POST("/:id/edit_comment/:commentID", b.updateComment)
			authed.GET("/:id/delete_comment/:commentID", b.confirmDeleteComment)
			authed.POST("/:id/delete_comment/:commentID", b.deleteComment)
		}
	}
}

func (b *BlogModule) getPost(postID uint) (*models.Post, error) {
	var post models.Post
	err := b.db.Preload("Author").Preload("Category").Preload("Location").
		First(&post, postID).Error
	return &post, err
}

func (b *BlogModule) getComments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := b.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (b *BlogModule) postDetail(c *gin.Context) {
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

	comments, err := b.getComments(post.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "blog_error.html", gin.H{"error": "Error loading comments"})
		return
	}

	c.HTML(http.StatusOK, "blog_post.html", gin.H{
		"post":     post,
		"textHTML": template.HTML(renderMarkdown(post.Text)),
		"comments": comments,
		"actorID":  accounts.SessionUserID(c),
	})
}

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		// on conversion failure fall back to the raw text so the page still renders
		return content
	}
	return buf.String()
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}
