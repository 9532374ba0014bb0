package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/linkdeck/linkdeck-backend/internal/config"
	"github.com/linkdeck/linkdeck-backend/internal/dto"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var ErrNoProfile = errors.New("no profile returned by identity provider")

// GoogleClient drives the Google authorization-code flow.
type GoogleClient struct {
	oauth *oauth2.Config
}

func NewGoogleClient(cfg *config.Config) *GoogleClient {
	return &GoogleClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleCallbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL returns the consent-screen redirect URL for the given state.
func (g *GoogleClient) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

// FetchProfile exchanges the callback code and resolves the user's profile
// from the userinfo endpoint.
func (g *GoogleClient) FetchProfile(ctx context.Context, code string) (*dto.GoogleProfile, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	resp, err := g.oauth.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("userinfo returned %d: %s", resp.StatusCode, body)
	}

	var profile dto.GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if profile.ID == "" {
		return nil, ErrNoProfile
	}
	return &profile, nil
}
