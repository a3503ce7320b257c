package accounts

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	emailpkg "blogicum/email"
	"blogicum/models"
)

type AccountsModule struct {
	db     *gorm.DB
	mailer *emailpkg.EmailService
}

func NewAccountsModule(db *gorm.DB, mailer *emailpkg.EmailService) *AccountsModule {
	return &AccountsModule{
		db:     db,
		mailer: mailer,
	}
}

func (a *AccountsModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/auth/registration", a.registrationPage)
	router.POST("/auth/registration", a.registrationPost)
	router.GET("/auth/login", a.loginPage)
	router.POST("/auth/login", a.loginPost)
	router.GET("/auth/logout", a.logout)

	router.GET("/edit_profile", RequireAuth, a.editProfile)
	router.POST("/edit_profile", RequireAuth, a.updateProfile)
}

// RequireAuth gates mutation routes: anonymous requests are redirected to
// the login page before any handler runs.
func RequireAuth(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get("user_id")

	if userID == nil {
		c.Redirect(http.StatusFound, "/auth/login")
		c.Abort()
		return
	}

	c.Set("user_id", userID)
	c.Next()
}

// SessionUserID returns the acting user's id, or 0 for anonymous
// requests. Usable on public routes where RequireAuth did not run.
func SessionUserID(c *gin.Context) int {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(int); ok {
			return id
		}
	}
	session := sessions.Default(c)
	if v := session.Get("user_id"); v != nil {
		if id, ok := v.(int); ok {
			return id
		}
	}
	return 0
}

func (a *AccountsModule) currentUser(c *gin.Context) (*models.User, error) {
	var user models.User
	err := a.db.First(&user, SessionUserID(c)).Error
	return &user, err
}

func (a *AccountsModule) registrationPage(c *gin.Context) {
	if SessionUserID(c) != 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "auth_registration.html", gin.H{})
}

func (a *AccountsModule) registrationPost(c *gin.Context) {
	username := c.PostForm("username")
	firstName := c.PostForm("first_name")
	lastName := c.PostForm("last_name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	// form data to re-render on error (never echo the password back)
	formData := gin.H{
		"username":   username,
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
	}

	if username == "" || email == "" || password == "" {
		formData["error"] = "Username, email and password are required"
		c.HTML(http.StatusBadRequest, "auth_registration.html", formData)
		return
	}

	var existing models.User
	if err := a.db.Where("username = ?", username).First(&existing).Error; err == nil {
		formData["error"] = "This username is already taken"
		c.HTML(http.StatusBadRequest, "auth_registration.html", formData)
		return
	}
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		formData["error"] = "This email is already registered"
		c.HTML(http.StatusBadRequest, "auth_registration.html", formData)
		return
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		formData["error"] = "Error creating account"
		c.HTML(http.StatusInternalServerError, "auth_registration.html", formData)
		return
	}

	user := models.User{
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := a.db.Create(&user).Error; err != nil {
		formData["error"] = "Error creating account"
		c.HTML(http.StatusInternalServerError, "auth_registration.html", formData)
		return
	}

	if a.mailer != nil && a.mailer.Configured() {
		if err := a.mailer.SendWelcomeEmail(user.Email, user.Username); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("Error sending welcome email")
		}
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func (a *AccountsModule) loginPage(c *gin.Context) {
	if SessionUserID(c) != 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "auth_login.html", gin.H{})
}

func (a *AccountsModule) loginPost(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var user models.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "auth_login.html", gin.H{
			"error":    "Incorrect username or password",
			"username": username,
		})
		return
	}

	if !checkPasswordHash(password, user.PasswordHash) {
		c.HTML(http.StatusUnauthorized, "auth_login.html", gin.H{
			"error":    "Incorrect username or password",
			"username": username,
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func (a *AccountsModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (a *AccountsModule) editProfile(c *gin.Context) {
	user, err := a.currentUser(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	c.HTML(http.StatusOK, "auth_profile_form.html", gin.H{"user": user})
}

func (a *AccountsModule) updateProfile(c *gin.Context) {
	user, err := a.currentUser(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	username := c.PostForm("username")
	firstName := c.PostForm("first_name")
	lastName := c.PostForm("last_name")
	email := c.PostForm("email")

	if username != "" && username != user.Username {
		var existing models.User
		if err := a.db.Where("username = ?", username).First(&existing).Error; err == nil {
			c.HTML(http.StatusBadRequest, "auth_profile_form.html", gin.H{
				"error": "This username is already taken",
				"user":  user,
			})
			return
		}
		user.Username = username
	}

	if email != "" && email != user.Email {
		var existing models.User
		if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.HTML(http.StatusBadRequest, "auth_profile_form.html", gin.H{
				"error": "This email is already registered",
				"user":  user,
			})
			return
		}
		user.Email = email
	}

	user.FirstName = firstName
	user.LastName = lastName

	if err := a.db.Save(user).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "auth_profile_form.html", gin.H{
			"error": "Error saving profile",
			"user":  user,
		})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
