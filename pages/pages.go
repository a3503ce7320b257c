package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PagesModule struct{}

func NewPagesModule() *PagesModule {
	return &PagesModule{}
}

func (p *PagesModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/pages/about", p.about)
	router.GET("/pages/rules", p.rules)
}

func (p *PagesModule) about(c *gin.Context) {
	c.HTML(http.StatusOK, "pages_about.html", gin.H{})
}

func (p *PagesModule) rules(c *gin.Context) {
	c.HTML(http.StatusOK, "pages_rules.html", gin.H{})
}
