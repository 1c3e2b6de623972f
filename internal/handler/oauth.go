package handler

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) oauthSignin(c *gin.Context) {
	c.Redirect(http.StatusFound, h.auth.AuthorizationURL())
}

func (h *Handler) oauthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing authorization code"})
		return
	}

	tokens, err := h.auth.GenerateTokens(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.setTokenCookies(c, tokens)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) oauthSignout(c *gin.Context) {
	h.clearTokenCookies(c)
	c.Redirect(http.StatusFound, "/")
}

// oauthToken hands the public token to the browser-side viewer.
func (h *Handler) oauthToken(c *gin.Context) {
	tokens := h.getTokens(c)
	if tokens == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": errNotSignedIn.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": tokens.PublicToken,
		"token_type":   "Bearer",
		"expires_in":   math.Floor(time.Until(tokens.ExpiresAt).Seconds()),
	})
}

func (h *Handler) userProfile(c *gin.Context) {
	tokens := h.getTokens(c)
	if tokens == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": errNotSignedIn.Error()})
		return
	}

	user, err := h.auth.GetUserProfile(c.Request.Context(), tokens.InternalToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
