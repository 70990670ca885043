package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/notexe/postly-cli/internal/postly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	reminders   []postly.Reminder
	created     []postly.ReminderInput
	deleted     []postly.ID
	suggestions []postly.Suggestion
	drafts      []postly.DraftSummary
	plans       []postly.PlanRequest
	err         error
}

func (f *fakeAPI) ListReminders(context.Context) ([]postly.Reminder, error) {
	return f.reminders, f.err
}

func (f *fakeAPI) CreateReminder(_ context.Context, in postly.ReminderInput) (postly.Reminder, error) {
	if f.err != nil {
		return postly.Reminder{}, f.err
	}
	f.created = append(f.created, in)
	return postly.Reminder{
		ID:          "r1",
		ScheduledAt: in.ScheduledAt,
		Platform:    in.Platform,
		Note:        in.Note,
		NotifyEmail: in.NotifyEmail,
		DraftID:     in.DraftID,
	}, nil
}

func (f *fakeAPI) DeleteReminder(_ context.Context, id postly.ID) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeAPI) FetchSuggestions(context.Context, postly.Platform) ([]postly.Suggestion, error) {
	return f.suggestions, f.err
}

func (f *fakeAPI) ListDrafts(context.Context) ([]postly.DraftSummary, error) {
	return f.drafts, f.err
}

func (f *fakeAPI) GeneratePlan(_ context.Context, req postly.PlanRequest) (postly.PlanResult, error) {
	f.plans = append(f.plans, req)
	return postly.PlanResult{Platforms: []string{"instagram", "tiktok"}}, f.err
}

func newTestServer(api API) *Server {
	s := NewServer(api, time.UTC, postly.PlatformInstagram, nil)
	s.now = func() time.Time { return time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC) }
	return s
}

func callReq(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestAddReminder(t *testing.T) {
	api := &fakeAPI{}
	s := newTestServer(api)

	res, err := s.handleAddReminder(context.Background(), callReq(map[string]any{
		"date":         "2024-03-15",
		"time":         "09:30",
		"platform":     "tiktok",
		"note":         "teaser",
		"notify_email": false,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	require.Len(t, api.created, 1)
	in := api.created[0]
	assert.True(t, in.ScheduledAt.Equal(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, postly.PlatformTikTok, in.Platform)
	assert.Equal(t, "teaser", in.Note)
	assert.False(t, in.NotifyEmail)

	var view reminderView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &view))
	assert.Equal(t, "2024-03-15", view.Date)
	assert.Equal(t, "09:30", view.Time)
}

func TestAddReminderDefaults(t *testing.T) {
	api := &fakeAPI{}
	s := newTestServer(api)

	res, err := s.handleAddReminder(context.Background(), callReq(map[string]any{"date": "2024-03-15"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	in := api.created[0]
	assert.Equal(t, 12, in.ScheduledAt.Hour())
	assert.Equal(t, postly.PlatformInstagram, in.Platform)
	assert.True(t, in.NotifyEmail)
	assert.Empty(t, in.DraftID)
}

func TestAddReminderErrors(t *testing.T) {
	s := newTestServer(&fakeAPI{})
	res, err := s.handleAddReminder(context.Background(), callReq(map[string]any{"date": "15/03/2024"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	s = newTestServer(&fakeAPI{err: errors.New("boom")})
	res, err = s.handleAddReminder(context.Background(), callReq(map[string]any{"date": "2024-03-15"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "boom")
}

func TestListRemindersByMonth(t *testing.T) {
	api := &fakeAPI{reminders: []postly.Reminder{
		{ID: "1", ScheduledAt: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), Platform: postly.PlatformInstagram},
		{ID: "2", ScheduledAt: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC), Platform: postly.PlatformTwitter},
	}}
	s := newTestServer(api)

	res, err := s.handleListReminders(context.Background(), callReq(map[string]any{"month": "2024-03"}))
	require.NoError(t, err)

	var views []reminderView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &views))
	require.Len(t, views, 1)
	assert.Equal(t, postly.ID("1"), views[0].ID)

	res, err = s.handleListReminders(context.Background(), callReq(nil))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &views))
	assert.Len(t, views, 2)

	res, err = s.handleListReminders(context.Background(), callReq(map[string]any{"month": "2023-01"}))
	require.NoError(t, err)
	assert.Equal(t, "No reminders found.", resultText(t, res))
}

func TestCalendarMonth(t *testing.T) {
	api := &fakeAPI{reminders: []postly.Reminder{
		{ID: "1", ScheduledAt: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)},
		{ID: "2", ScheduledAt: time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)},
	}}
	s := newTestServer(api)

	res, err := s.handleCalendarMonth(context.Background(), callReq(nil))
	require.NoError(t, err)

	var mv monthView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &mv))
	assert.Equal(t, "2024-03", mv.Month)
	assert.Equal(t, 4, mv.LeadingBlanks) // March 1st 2024 is a Friday
	assert.Len(t, mv.Days, 31)
	assert.Equal(t, 2, mv.Days[14].Reminders)
	assert.Equal(t, 2, mv.Total)
}

func TestSuggestKeepsOwnOffset(t *testing.T) {
	plus3 := time.FixedZone("+03", 3*3600)
	api := &fakeAPI{suggestions: []postly.Suggestion{
		{Datetime: time.Date(2024, 3, 20, 18, 0, 0, 0, plus3), Reason: "evening peak"},
	}}
	s := newTestServer(api)

	res, err := s.handleSuggest(context.Background(), callReq(map[string]any{"platform": "tiktok"}))
	require.NoError(t, err)

	var views []suggestionView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "2024-03-20", views[0].Date)
	assert.Equal(t, "18:00", views[0].Time)
	assert.Equal(t, postly.PlatformTikTok, views[0].Platform)
}

func TestDeleteAndPlan(t *testing.T) {
	api := &fakeAPI{}
	s := newTestServer(api)

	res, err := s.handleDeleteReminder(context.Background(), callReq(map[string]any{"id": "42"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, []postly.ID{"42"}, api.deleted)

	res, err = s.handleDeleteReminder(context.Background(), callReq(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleGeneratePlan(context.Background(), callReq(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, api.plans, 1)
	assert.Equal(t, postly.PlanRequest{Platform: "all", Days: 7}, api.plans[0])
}

func TestListDrafts(t *testing.T) {
	s := newTestServer(&fakeAPI{})
	res, err := s.handleListDrafts(context.Background(), callReq(nil))
	require.NoError(t, err)
	assert.Equal(t, "No drafts found.", resultText(t, res))

	s = newTestServer(&fakeAPI{drafts: []postly.DraftSummary{{ID: "d1", Title: "Teaser"}}})
	res, err = s.handleListDrafts(context.Background(), callReq(nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "Teaser")
}
