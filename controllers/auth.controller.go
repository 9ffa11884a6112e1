package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jmt-archery-backend/middleware"
	"jmt-archery-backend/models"
)

func (ctrl *Controller) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, maxAge, "/", "", ctrl.SecureCookie, true)
}

// Register menangani registrasi pengguna baru.
func (ctrl *Controller) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := ctrl.Users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Registration successful", "user": user})
}

// Login menangani proses login dan menerbitkan token sesi.
func (ctrl *Controller) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := ctrl.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := ctrl.Tokens.Issue(user)
	if err != nil {
		respondError(c, err)
		return
	}
	ctrl.setSessionCookie(c, token, int(ctrl.Tokens.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful", "user": user, "token": token})
}

// Logout menghapus cookie sesi.
func (ctrl *Controller) Logout(c *gin.Context) {
	ctrl.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me mengembalikan data pengguna yang sedang login.
func (ctrl *Controller) Me(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	user, err := ctrl.Users.GetUser(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
