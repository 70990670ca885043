package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/notexe/postly-cli/internal/config"
	"github.com/notexe/postly-cli/internal/postly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaDraftNote(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"\"Film the teaser in daylight\"\nExtra line"},"done":true,"eval_count":9}`))
	}))
	defer srv.Close()

	writer := NewNoteWriter(NewOllamaProvider(srv.URL+"/", time.Second), "llama3", 0, 0.5, nil)
	note, err := writer.Draft(context.Background(), NoteRequest{
		ScheduledAt: time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC),
		Platform:    postly.PlatformTikTok,
		Draft:       "Spring promo",
		Hint:        "teaser",
	})
	require.NoError(t, err)
	assert.Equal(t, "Film the teaser in daylight", note)

	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, 256, got.Options.NumPredict)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, "TikTok")
	assert.Contains(t, got.Messages[1].Content, "Spring promo")
	assert.Contains(t, got.Messages[1].Content, "Friday, March 15 09:30")
}

func TestOllamaErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	writer := NewNoteWriter(NewOllamaProvider(srv.URL, time.Second), "missing", 32, 0, nil)
	_, err := writer.Draft(context.Background(), NoteRequest{Platform: postly.PlatformInstagram})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "model not found")
}

func TestDraftEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"  "},"done":true}`))
	}))
	defer srv.Close()

	writer := NewNoteWriter(NewOllamaProvider(srv.URL, time.Second), "m", 0, 0, nil)
	_, err := writer.Draft(context.Background(), NoteRequest{})
	assert.ErrorContains(t, err, "empty reply")
}

func TestDisabledWriter(t *testing.T) {
	var writer *NoteWriter
	_, err := writer.Draft(context.Background(), NoteRequest{})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(config.AssistConfig{Provider: config.AssistNone})
	assert.ErrorIs(t, err, ErrDisabled)

	p, err := NewProvider(config.AssistConfig{Provider: config.AssistOllama})
	require.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())

	_, err = NewProvider(config.AssistConfig{Provider: config.AssistDeepSeek})
	assert.Error(t, err)

	_, err = NewProvider(config.AssistConfig{Provider: "gpt"})
	assert.ErrorContains(t, err, "unknown assist provider")
}

func TestCleanNote(t *testing.T) {
	assert.Equal(t, "Post the reel", CleanNote("  “Post the reel”  "))
	assert.Equal(t, "first", CleanNote("first\nsecond"))

	long := CleanNote(strings.Repeat("a", 300))
	assert.Equal(t, MaxNoteLen, utf8.RuneCountInString(long))
	assert.True(t, strings.HasSuffix(long, "…"))
}
