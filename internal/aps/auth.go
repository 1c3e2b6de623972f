package aps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aps-extract/extract-service/internal/model"
	"golang.org/x/oauth2"
)

const (
	authURL     = "https://developer.api.autodesk.com/authentication/v2/authorize"
	tokenURL    = "https://developer.api.autodesk.com/authentication/v2/token"
	userInfoURL = "https://api.userprofile.autodesk.com/userinfo"
)

// Authenticator handles the APS three-legged OAuth flow for the signed-in
// user: authorize redirect, code exchange and token refresh.
type Authenticator struct {
	cfg        oauth2.Config
	httpClient *http.Client
}

func NewAuthenticator(clientID, clientSecret, callbackURL string) *Authenticator {
	return &Authenticator{
		cfg: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"data:read", "viewables:read"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		httpClient: &http.Client{},
	}
}

func (a *Authenticator) AuthorizationURL() string {
	return a.cfg.AuthCodeURL("")
}

func (a *Authenticator) GenerateTokens(ctx context.Context, code string) (*model.Tokens, error) {
	tok, err := a.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %s", err.Error())
	}

	return &model.Tokens{
		InternalToken: tok.AccessToken,
		PublicToken:   tok.AccessToken,
		RefreshToken:  tok.RefreshToken,
		ExpiresAt:     tok.Expiry,
	}, nil
}

func (a *Authenticator) RefreshTokens(ctx context.Context, tokens *model.Tokens) (*model.Tokens, error) {
	src := a.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: tokens.RefreshToken})

	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh tokens: %s", err.Error())
	}

	return &model.Tokens{
		InternalToken: tok.AccessToken,
		PublicToken:   tok.AccessToken,
		RefreshToken:  tok.RefreshToken,
		ExpiresAt:     tok.Expiry,
	}, nil
}

func (a *Authenticator) GetUserProfile(ctx context.Context, token string) (*model.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %s", err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %s", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("userinfo responded with status %d: %s", resp.StatusCode, string(body))
	}

	var user model.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %s", err.Error())
	}

	return &user, nil
}
