// Package mcpserver exposes the reminder scheduler as MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/notexe/postly-cli/internal/calendar"
	"github.com/notexe/postly-cli/internal/postly"
	"github.com/notexe/postly-cli/internal/scheduler"
	"go.uber.org/zap"
)

const (
	serverName    = "postly-scheduler"
	serverVersion = "1.0.0"
)

// API is the part of the Postly backend the tools use.
type API interface {
	ListReminders(ctx context.Context) ([]postly.Reminder, error)
	CreateReminder(ctx context.Context, in postly.ReminderInput) (postly.Reminder, error)
	DeleteReminder(ctx context.Context, id postly.ID) error
	FetchSuggestions(ctx context.Context, platform postly.Platform) ([]postly.Suggestion, error)
	ListDrafts(ctx context.Context) ([]postly.DraftSummary, error)
	GeneratePlan(ctx context.Context, req postly.PlanRequest) (postly.PlanResult, error)
}

// Server is the MCP server for the reminder calendar.
type Server struct {
	mcpServer       *server.MCPServer
	api             API
	loc             *time.Location
	defaultPlatform postly.Platform
	now             func() time.Time
	logger          *zap.Logger
}

// NewServer creates the MCP server. Dates and times given to and returned
// by the tools are in loc.
func NewServer(api API, loc *time.Location, defaultPlatform postly.Platform, logger *zap.Logger) *Server {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultPlatform == "" {
		defaultPlatform = postly.DefaultPlatform
	}

	s := &Server{
		api:             api,
		loc:             loc,
		defaultPlatform: defaultPlatform,
		now:             time.Now,
		logger:          logger.Named("mcp"),
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List scheduled post reminders, optionally only those of one month"),
			mcp.WithString("month", mcp.Description("Month as YYYY-MM; empty for all reminders")),
		),
		s.handleListReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("calendar_month",
			mcp.WithDescription("Show a month of the reminder calendar: days, weekday offset of the 1st (Monday first) and reminder counts per day"),
			mcp.WithString("month", mcp.Description("Month as YYYY-MM; empty for the current month")),
		),
		s.handleCalendarMonth,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Schedule a reminder to publish a post"),
			mcp.WithString("date", mcp.Required(), mcp.Description("Day as YYYY-MM-DD")),
			mcp.WithString("time", mcp.Description("Time as HH:MM (default 12:00)")),
			mcp.WithString("platform", mcp.Description("instagram, tiktok, twitter or onlyfans")),
			mcp.WithString("note", mcp.Description("Short note shown with the reminder")),
			mcp.WithBoolean("notify_email", mcp.Description("Also send an email notification (default true)")),
			mcp.WithString("draft_id", mcp.Description("Content draft to attach, see list_drafts")),
		),
		s.handleAddReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleDeleteReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("suggest_posting_times",
			mcp.WithDescription("Recommended posting times for a platform"),
			mcp.WithString("platform", mcp.Description("instagram, tiktok, twitter or onlyfans")),
		),
		s.handleSuggest,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_drafts",
			mcp.WithDescription("List content drafts that can be attached to reminders"),
		),
		s.handleListDrafts,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("generate_plan",
			mcp.WithDescription("Generate an AI posting plan across all platforms; the planned reminders are created on the server"),
			mcp.WithNumber("days", mcp.Description("Number of days to plan (default 7)")),
		),
		s.handleGeneratePlan,
	)
}

// reminderView is a reminder as returned by the tools, in the server's zone.
type reminderView struct {
	ID          postly.ID       `json:"id"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Platform    postly.Platform `json:"platform,omitempty"`
	Note        string          `json:"note,omitempty"`
	NotifyEmail bool            `json:"notify_email"`
	DraftID     postly.ID       `json:"draft_id,omitempty"`
}

func (s *Server) view(r postly.Reminder) reminderView {
	at := r.ScheduledAt.In(s.loc)
	return reminderView{
		ID:          r.ID,
		Date:        calendar.DateOf(at, nil).String(),
		Time:        at.Format("15:04"),
		Platform:    r.Platform,
		Note:        r.Note,
		NotifyEmail: r.NotifyEmail,
		DraftID:     r.DraftID,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	output, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(output))
}

func (s *Server) monthArg(req mcp.CallToolRequest) (calendar.Month, error) {
	raw := req.GetString("month", "")
	if raw == "" {
		return calendar.CurrentMonth(s.now(), s.loc), nil
	}
	return calendar.ParseMonth(raw)
}

func (s *Server) handleListReminders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reminders, err := s.api.ListReminders(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
	}

	var only *calendar.Month
	if req.GetString("month", "") != "" {
		m, err := s.monthArg(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		only = &m
	}

	views := make([]reminderView, 0, len(reminders))
	for _, r := range reminders {
		if only != nil && !only.Contains(calendar.DateOf(r.ScheduledAt, s.loc)) {
			continue
		}
		views = append(views, s.view(r))
	}

	if len(views) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}
	return jsonResult(views), nil
}

type dayView struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	Reminders int    `json:"reminders"`
}

type monthView struct {
	Month         string    `json:"month"`
	Label         string    `json:"label"`
	LeadingBlanks int       `json:"leading_blanks"`
	Days          []dayView `json:"days"`
	Total         int       `json:"total"`
}

func (s *Server) handleCalendarMonth(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := s.monthArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reminders, err := s.api.ListReminders(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
	}
	byDay := calendar.RemindersByDay(reminders, s.loc)

	out := monthView{
		Month:         m.String(),
		Label:         m.Label(),
		LeadingBlanks: calendar.LeadingBlanks(m.Year, m.Month),
	}
	for _, d := range calendar.DaysInMonth(m.Year, m.Month) {
		n := len(byDay[d])
		out.Total += n
		out.Days = append(out.Days, dayView{Date: d.String(), Weekday: d.Weekday().String()[:3], Reminders: n})
	}
	return jsonResult(out), nil
}

func (s *Server) handleAddReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := calendar.ParseDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date: %v (use YYYY-MM-DD)", err)), nil
	}

	platform := postly.Platform(req.GetString("platform", ""))
	if platform == "" {
		platform = s.defaultPlatform
	}

	form := scheduler.DefaultForm(date, platform)
	if t := req.GetString("time", ""); t != "" {
		form.Time = t
	}
	form.Note = req.GetString("note", "")
	form.NotifyEmail = req.GetBool("notify_email", true)
	form.DraftID = postly.ID(req.GetString("draft_id", ""))

	created, err := s.api.CreateReminder(ctx, form.Input(s.loc))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not save reminder: %v", err)), nil
	}
	s.logger.Info("reminder added", zap.String("id", string(created.ID)))
	return jsonResult(s.view(created)), nil
}

func (s *Server) handleDeleteReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	if err := s.api.DeleteReminder(ctx, postly.ID(id)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reminder: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s deleted.", id)), nil
}

type suggestionView struct {
	Date     string          `json:"date"`
	Time     string          `json:"time"`
	Platform postly.Platform `json:"platform"`
	Reason   string          `json:"reason,omitempty"`
}

func (s *Server) handleSuggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	platform := postly.Platform(req.GetString("platform", ""))
	if platform == "" {
		platform = s.defaultPlatform
	}

	suggestions, err := s.api.FetchSuggestions(ctx, platform)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not load posting suggestions: %v", err)), nil
	}
	if len(suggestions) == 0 {
		return mcp.NewToolResultText("No suggestions available."), nil
	}

	views := make([]suggestionView, len(suggestions))
	for i, sg := range suggestions {
		form := scheduler.FormFromSuggestion(sg, platform)
		views[i] = suggestionView{
			Date:     form.Date.String(),
			Time:     form.Time,
			Platform: form.Platform,
			Reason:   sg.Reason,
		}
	}
	return jsonResult(views), nil
}

type draftView struct {
	ID    postly.ID `json:"id"`
	Label string    `json:"label"`
	Type  string    `json:"type,omitempty"`
}

func (s *Server) handleListDrafts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	drafts, err := s.api.ListDrafts(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list drafts: %v", err)), nil
	}
	if len(drafts) == 0 {
		return mcp.NewToolResultText("No drafts found."), nil
	}

	views := make([]draftView, len(drafts))
	for i, d := range drafts {
		views[i] = draftView{ID: d.ID, Label: d.Label(), Type: d.DraftType}
	}
	return jsonResult(views), nil
}

func (s *Server) handleGeneratePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := int(req.GetFloat("days", 7))
	if days <= 0 {
		return mcp.NewToolResultError("days must be positive"), nil
	}

	res, err := s.api.GeneratePlan(ctx, postly.PlanRequest{Platform: "all", Days: days})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not generate a posting plan: %v", err)), nil
	}
	return jsonResult(res), nil
}
