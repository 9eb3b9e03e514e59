// Package authapi talks to the hosted identity provider. It covers the
// three calls the session gateway needs: password sign-in, current-user
// lookup and sign-out. Nothing here retries; every failure surfaces once.
package authapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/carlosyadil/giettenerife-crm/internal/types"
)

const basePath = "/auth/v1"

// Client wraps the identity provider endpoints.
type Client struct {
	rc *resty.Client
}

// New creates an identity client for the given project URL. The anon key
// authenticates the application itself; user identity rides on bearer
// tokens per call.
func New(baseURL, anonKey string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL+basePath).
		SetHeader("Content-Type", "application/json").
		SetHeader("apikey", anonKey).
		SetTimeout(timeout)
	return &Client{rc: rc}
}

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Token is the session material returned by a successful sign-in.
type Token struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	User         tokenUser `json:"user"`
}

type authFailure struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

func (f authFailure) message() string {
	if f.ErrorDescription != "" {
		return f.ErrorDescription
	}
	if f.Msg != "" {
		return f.Msg
	}
	return f.Error
}

// SignIn performs the password grant. Invalid credentials come back as an
// AuthError value, not a transport failure.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Token, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(&passwordGrant{Email: email, Password: password}).
		Post("/token")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		var f authFailure
		_ = json.Unmarshal(resp.Body(), &f)
		return nil, &types.AuthError{Message: f.message()}
	}
	var tok Token
	if err := json.Unmarshal(resp.Body(), &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// GetUser resolves the identity behind an access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*types.User, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Get("/user")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		var f authFailure
		_ = json.Unmarshal(resp.Body(), &f)
		return nil, &types.AuthError{Message: f.message()}
	}
	var u tokenUser
	if err := json.Unmarshal(resp.Body(), &u); err != nil {
		return nil, err
	}
	return &types.User{ID: u.ID, Email: u.Email}, nil
}

// SignOut revokes the token on the provider side. Callers drop the local
// session regardless of the outcome, so a stale token is not an error
// worth retrying.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Post("/logout")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusNoContent && resp.StatusCode() != http.StatusOK {
		return types.ErrorFromStatus("sign out", resp.StatusCode(), resp.String())
	}
	return nil
}
