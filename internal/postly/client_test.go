package postly

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReminder(t *testing.T) {
	t.Run("sends payload and decodes backend copy", func(t *testing.T) {
		var got map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/schedule/reminders/", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id": 42, "scheduled_at": "2024-03-15T09:30:00Z", "platform": "tiktok", "note": "teaser", "notify_email": false}`))
		}))
		defer server.Close()

		c := NewClient(server.URL+"/api", StaticToken("tok"))
		at := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
		r, err := c.CreateReminder(context.Background(), ReminderInput{
			ScheduledAt: at,
			Platform:    PlatformTikTok,
			Note:        "teaser",
		})

		require.NoError(t, err)
		assert.Equal(t, ID("42"), r.ID)
		assert.True(t, r.ScheduledAt.Equal(at))
		assert.Equal(t, "2024-03-15T09:30:00Z", got["scheduled_at"])
		assert.Equal(t, "tiktok", got["platform"])
		assert.Equal(t, false, got["notify_email"])
		_, hasDraft := got["draft_id"]
		assert.False(t, hasDraft, "draft_id must be omitted when no draft is attached")
	})

	t.Run("includes draft reference when set", func(t *testing.T) {
		var got map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"id": "r1", "scheduled_at": "2024-03-15T09:30:00Z"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)
		_, err := c.CreateReminder(context.Background(), ReminderInput{DraftID: "d-7"})
		require.NoError(t, err)
		assert.Equal(t, "d-7", got["draft_id"])
	})

	t.Run("maps error detail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail": "scheduled_at must be ISO datetime"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, nil).CreateReminder(context.Background(), ReminderInput{})

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "scheduled_at must be ISO datetime", apiErr.Detail)
	})

	t.Run("401 matches ErrUnauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := NewClient(server.URL, nil).CreateReminder(context.Background(), ReminderInput{})
		assert.True(t, errors.Is(err, ErrUnauthorized))
	})
}

func TestFetchSuggestions(t *testing.T) {
	t.Run("passes platform and decodes list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/posting-suggestions/", r.URL.Path)
			assert.Equal(t, "tiktok", r.URL.Query().Get("platform"))
			_, _ = w.Write([]byte(`{"platform": "tiktok", "suggestions": [{"datetime": "2024-03-20T18:00:00Z", "platform": "tiktok", "reason": "peak engagement"}]}`))
		}))
		defer server.Close()

		got, err := NewClient(server.URL, nil).FetchSuggestions(context.Background(), PlatformTikTok)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "peak engagement", got[0].Reason)
		assert.Equal(t, 18, got[0].Datetime.Hour())
	})

	t.Run("missing suggestions field yields empty slice", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"platform": "instagram"}`))
		}))
		defer server.Close()

		got, err := NewClient(server.URL, nil).FetchSuggestions(context.Background(), PlatformInstagram)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("handles invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, nil).FetchSuggestions(context.Background(), PlatformInstagram)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode")
	})
}

func TestLoginIsPublic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"access": "a.b.c", "refresh": "r"}`))
	}))
	defer server.Close()

	tokens, err := NewClient(server.URL, StaticToken("stale")).Login(context.Background(), "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tokens.Access)
}

func TestDeleteReminder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/schedule/reminders/abc/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	require.NoError(t, NewClient(server.URL, nil).DeleteReminder(context.Background(), "abc"))
}

func TestDraftLabel(t *testing.T) {
	tests := []struct {
		name  string
		draft DraftSummary
		want  string
	}{
		{"title wins", DraftSummary{Title: "Beach reel", DraftType: "media"}, "Beach reel"},
		{"media fallback", DraftSummary{DraftType: "media"}, "Media draft"},
		{"idea fallback", DraftSummary{DraftType: "idea"}, "Idea draft"},
		{"untyped fallback", DraftSummary{}, "Untitled draft"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.draft.Label())
		})
	}
}

func TestIDUnmarshal(t *testing.T) {
	var r Reminder
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7, "draft_id": null, "scheduled_at": "2024-01-01T00:00:00Z"}`), &r))
	assert.Equal(t, ID("7"), r.ID)
	assert.Equal(t, ID(""), r.DraftID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "3f2a", "scheduled_at": "2024-01-01T00:00:00Z"}`), &r))
	assert.Equal(t, ID("3f2a"), r.ID)
}

func TestSuggestionLabelKeepsOffset(t *testing.T) {
	s := Suggestion{Datetime: time.Date(2024, 3, 20, 18, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Wed, Mar 20 18:00", s.Label())

	plus9 := time.FixedZone("+09", 9*3600)
	s = Suggestion{Datetime: time.Date(2024, 3, 21, 2, 30, 0, 0, plus9)}
	assert.Equal(t, "Thu, Mar 21 02:30", s.Label())
}
