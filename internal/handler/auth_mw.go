package handler

import (
	"net/http"
	"time"

	"github.com/aps-extract/extract-service/internal/model"
	"github.com/gin-gonic/gin"
)

// cookie names shared with the oauth handlers
const (
	cookieInternalToken = "internal_token"
	cookiePublicToken   = "public_token"
	cookieRefreshToken  = "refresh_token"
	cookieExpiresAt     = "expires_at"
)

// mwAuth rebuilds the signed-in user's APS tokens from cookies, refreshing
// them when expired, and puts them on the request context.
func (h *Handler) mwAuth(c *gin.Context) {
	internalToken, err := c.Cookie(cookieInternalToken)
	if err != nil || internalToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": errNotSignedIn.Error()})
		c.Abort()
		return
	}

	publicToken, _ := c.Cookie(cookiePublicToken)
	refreshToken, _ := c.Cookie(cookieRefreshToken)
	expiresAtRaw, _ := c.Cookie(cookieExpiresAt)

	expiresAt, err := time.Parse(time.RFC3339, expiresAtRaw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": errNotSignedIn.Error()})
		c.Abort()
		return
	}

	tokens := model.Tokens{
		InternalToken: internalToken,
		PublicToken:   publicToken,
		RefreshToken:  refreshToken,
		ExpiresAt:     expiresAt,
	}

	if tokens.ExpiresAt.Before(time.Now().UTC()) {
		refreshed, err := h.auth.RefreshTokens(c.Request.Context(), &tokens)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
			c.Abort()
			return
		}
		tokens = *refreshed
		h.setTokenCookies(c, &tokens)
	}

	c.Set("tokens", tokens)

	c.Next()
}

func (h *Handler) setTokenCookies(c *gin.Context, tokens *model.Tokens) {
	maxAge := int(time.Until(tokens.ExpiresAt).Seconds())
	c.SetCookie(cookieInternalToken, tokens.InternalToken, maxAge, "/", "", false, true)
	c.SetCookie(cookiePublicToken, tokens.PublicToken, maxAge, "/", "", false, true)
	c.SetCookie(cookieRefreshToken, tokens.RefreshToken, 0, "/", "", false, true)
	c.SetCookie(cookieExpiresAt, tokens.ExpiresAt.UTC().Format(time.RFC3339), 0, "/", "", false, true)
}

func (h *Handler) clearTokenCookies(c *gin.Context) {
	for _, name := range []string{cookieInternalToken, cookiePublicToken, cookieRefreshToken, cookieExpiresAt} {
		c.SetCookie(name, "", -1, "/", "", false, true)
	}
}
