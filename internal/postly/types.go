package postly

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Platform is a social network a reminder or suggestion targets.
// Unknown values are passed through untouched.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformOnlyFans  Platform = "onlyfans"
)

// DefaultPlatform is used when neither the user nor the profile picked one.
const DefaultPlatform = PlatformInstagram

// Platforms lists the platforms offered in selectors, in display order.
var Platforms = []Platform{PlatformInstagram, PlatformTikTok, PlatformTwitter, PlatformOnlyFans}

// DisplayName returns the human label for a platform.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformInstagram:
		return "Instagram"
	case PlatformTikTok:
		return "TikTok"
	case PlatformTwitter:
		return "Twitter / X"
	case PlatformOnlyFans:
		return "OnlyFans"
	case "":
		return "-"
	default:
		return string(p)
	}
}

// Known reports whether p is one of the built-in platforms.
func (p Platform) Known() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// ID is an opaque backend identifier. The backend sends UUID strings for
// drafts and integers for some legacy objects, so both decode into ID.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Reminder is a scheduled notification about a post, as stored by the backend.
type Reminder struct {
	ID          ID        `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Platform    Platform  `json:"platform,omitempty"`
	Note        string    `json:"note,omitempty"`
	NotifyEmail bool      `json:"notify_email"`
	DraftID     ID        `json:"draft_id,omitempty"`
}

// ReminderInput is the creation payload for a reminder.
// DraftID is omitted from the wire when empty.
type ReminderInput struct {
	ScheduledAt time.Time `json:"scheduled_at"`
	Platform    Platform  `json:"platform"`
	Note        string    `json:"note"`
	NotifyEmail bool      `json:"notify_email"`
	DraftID     ID        `json:"draft_id,omitempty"`
}

// DraftKind distinguishes the kinds of content drafts.
type DraftKind int

const (
	DraftUntyped DraftKind = iota
	DraftIdea
	DraftMedia
)

// DraftSummary is a lightweight reference to a content draft.
type DraftSummary struct {
	ID        ID     `json:"id"`
	Title     string `json:"title,omitempty"`
	DraftType string `json:"draft_type,omitempty"`
}

// Kind maps the backend's draft_type onto a DraftKind.
func (d DraftSummary) Kind() DraftKind {
	switch d.DraftType {
	case "media":
		return DraftMedia
	case "idea":
		return DraftIdea
	default:
		return DraftUntyped
	}
}

// Label returns the title, or a generic label for the draft's kind.
func (d DraftSummary) Label() string {
	if d.Title != "" {
		return d.Title
	}
	switch d.Kind() {
	case DraftMedia:
		return "Media draft"
	case DraftIdea:
		return "Idea draft"
	default:
		return "Untitled draft"
	}
}

// Suggestion is a recommended posting slot.
type Suggestion struct {
	Datetime time.Time `json:"datetime"`
	Platform Platform  `json:"platform"`
	Reason   string    `json:"reason,omitempty"`
}

// Label formats the slot in its own offset, e.g. "Wed, Mar 20 18:00".
func (s Suggestion) Label() string {
	return s.Datetime.Format("Mon, Jan 2 15:04")
}

type suggestionsResponse struct {
	Platform    Platform     `json:"platform"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Profile holds the parts of the creator profile the scheduler uses.
type Profile struct {
	Username        string   `json:"username,omitempty"`
	DefaultPlatform Platform `json:"default_platform,omitempty"`
	Timezone        string   `json:"timezone,omitempty"`
}

// PlanRequest asks the backend to generate a posting plan.
type PlanRequest struct {
	Platform string `json:"platform"`
	Days     int    `json:"days"`
}

// PlanResult lists the platforms the generated plan covers.
type PlanResult struct {
	Platforms []string `json:"platforms"`
}

// Tokens is the JWT pair returned by the login endpoint.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
