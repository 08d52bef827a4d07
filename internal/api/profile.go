package api

import (
	"context"
	"net/http"

	"taskdeck/internal/service"
)

type wireProfile struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type wireSettings struct {
	Theme           string `json:"theme"`
	AIResponseStyle string `json:"ai_response_style"`
	Language        string `json:"language"`
}

// Profile returns the user's editable profile.
func (c *Client) Profile(ctx context.Context) (service.Profile, error) {
	var res wireProfile
	if err := c.do(ctx, http.MethodGet, "/profile/", nil, requestOptions{}, &res); err != nil {
		return service.Profile{}, err
	}
	return service.Profile{Name: res.Name, AvatarURL: res.AvatarURL}, nil
}

// UpdateProfile sends only the non-nil patch fields.
func (c *Client) UpdateProfile(ctx context.Context, p service.ProfilePatch) (service.Profile, error) {
	body := map[string]string{}
	if p.Name != nil {
		body["name"] = *p.Name
	}
	if p.AvatarURL != nil {
		body["avatar_url"] = *p.AvatarURL
	}

	var res wireProfile
	if err := c.do(ctx, http.MethodPut, "/profile/", body, requestOptions{}, &res); err != nil {
		return service.Profile{}, err
	}
	return service.Profile{Name: res.Name, AvatarURL: res.AvatarURL}, nil
}

// Settings returns the user's persisted preferences.
func (c *Client) Settings(ctx context.Context) (service.Settings, error) {
	var res wireSettings
	if err := c.do(ctx, http.MethodGet, "/settings/", nil, requestOptions{}, &res); err != nil {
		return service.Settings{}, err
	}
	return service.Settings{
		Theme:           res.Theme,
		AIResponseStyle: res.AIResponseStyle,
		Language:        res.Language,
	}, nil
}

// UpdateSettings sends only the non-nil patch fields.
func (c *Client) UpdateSettings(ctx context.Context, p service.SettingsPatch) (service.Settings, error) {
	body := map[string]string{}
	if p.Theme != nil {
		body["theme"] = *p.Theme
	}
	if p.AIResponseStyle != nil {
		body["ai_response_style"] = *p.AIResponseStyle
	}
	if p.Language != nil {
		body["language"] = *p.Language
	}

	var res wireSettings
	if err := c.do(ctx, http.MethodPut, "/settings/", body, requestOptions{}, &res); err != nil {
		return service.Settings{}, err
	}
	return service.Settings{
		Theme:           res.Theme,
		AIResponseStyle: res.AIResponseStyle,
		Language:        res.Language,
	}, nil
}
