package api

import (
	"context"
	"net/http"

	"taskdeck/internal/session"
)

// credentials is the shape returned by both login and register.
type credentials struct {
	Access  string   `json:"access"`
	Refresh string   `json:"refresh"`
	User    wireUser `json:"user"`
}

// Login authenticates with email and password. The returned session is
// persisted before Login returns; callers do not store it themselves.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var res credentials
	err := c.do(ctx, http.MethodPost, "/auth/login/",
		map[string]string{"email": email, "password": password},
		requestOptions{skipAuth: true}, &res)
	if err != nil {
		return nil, err
	}
	return c.storeCredentials(res)
}

// Register creates an account. Like Login, the resulting session is persisted
// as a side effect.
func (c *Client) Register(ctx context.Context, email, password, name string) (*session.Session, error) {
	var res credentials
	err := c.do(ctx, http.MethodPost, "/auth/register/",
		map[string]string{"email": email, "password": password, "name": name},
		requestOptions{skipAuth: true}, &res)
	if err != nil {
		return nil, err
	}
	return c.storeCredentials(res)
}

func (c *Client) storeCredentials(res credentials) (*session.Session, error) {
	s := &session.Session{
		AccessToken:  res.Access,
		RefreshToken: res.Refresh,
		User:         normalizeUser(res.User),
	}
	if err := c.sessions.Set(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Logout revokes the refresh token server-side, then clears the local
// session. Revocation is best effort: a failure is logged and the local
// session is cleared anyway.
func (c *Client) Logout(ctx context.Context) error {
	if s := c.sessions.Get(); s != nil && s.RefreshToken != "" {
		err := c.do(ctx, http.MethodPost, "/auth/logout/",
			map[string]string{"refresh": s.RefreshToken},
			requestOptions{}, nil)
		if err != nil {
			c.logf("api: logout revoke failed: %v", err)
		}
	}
	return c.sessions.Clear()
}

// meResponse tolerates both the nested {user: {...}, profile: {...}} shape
// and a flat user object.
type meResponse struct {
	User  *wireUser  `json:"user"`
	ID    flexString `json:"id"`
	Email string     `json:"email"`
	Name  string     `json:"name"`
}

// CurrentUser fetches the authenticated user and refreshes the user field of
// the stored session, preserving tokens.
func (c *Client) CurrentUser(ctx context.Context) (session.User, error) {
	var res meResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me/", nil, requestOptions{}, &res); err != nil {
		return session.User{}, err
	}

	w := wireUser{ID: res.ID, Email: res.Email, Name: res.Name}
	if res.User != nil {
		w = *res.User
	}
	u := normalizeUser(w)
	if err := c.sessions.UpdateUser(u); err != nil {
		return session.User{}, err
	}
	return u, nil
}
