package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/service"
)

func TestProfileRoundTrip(t *testing.T) {
	var putBody map[string]json.RawMessage
	mux := http.NewServeMux()
	mux.HandleFunc("/profile/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]string{"name": "Ada", "avatar_url": "https://img/a.png"})
		case http.MethodPut:
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, &putBody))
			writeJSON(w, http.StatusOK, map[string]string{"name": "Bea", "avatar_url": "https://img/a.png"})
		}
	})

	c, store := newTestClient(t, mux)
	seedSession(t, store)

	p, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, service.Profile{Name: "Ada", AvatarURL: "https://img/a.png"}, p)

	name := "Bea"
	p, err = c.UpdateProfile(context.Background(), service.ProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Bea", p.Name)

	assert.Contains(t, putBody, "name")
	assert.NotContains(t, putBody, "avatar_url", "untouched fields are not sent")
}

func TestSettingsRoundTrip(t *testing.T) {
	var putBody map[string]json.RawMessage
	mux := http.NewServeMux()
	mux.HandleFunc("/settings/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]string{
				"theme": "light", "ai_response_style": "balanced", "language": "en",
			})
		case http.MethodPut:
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, &putBody))
			writeJSON(w, http.StatusOK, map[string]string{
				"theme": "dark", "ai_response_style": "balanced", "language": "en",
			})
		}
	})

	c, store := newTestClient(t, mux)
	seedSession(t, store)

	s, err := c.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "light", s.Theme)

	theme := "dark"
	s, err = c.UpdateSettings(context.Background(), service.SettingsPatch{Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Theme)

	assert.Contains(t, putBody, "theme")
	assert.NotContains(t, putBody, "language")
}
