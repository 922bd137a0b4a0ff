package models

import (
	"bytes"
	"time"

	json "github.com/goccy/go-json"
)

// VoteChoice is the option text this viewer chose. It marshals as an
// explicit null when unset, matching the nullable column the read API
// exposes for it.
type VoteChoice string

func (v VoteChoice) MarshalJSON() ([]byte, error) {
	if v == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(v))
}

func (v *VoteChoice) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = VoteChoice(s)
	return nil
}

// Option text is the stable identity the client targets votes at, never the
// index: PERGUNTAS polls grow options after creation.
type Option struct {
	Text  string `json:"text" db:"text"`
	Votes int    `json:"votes" db:"votes"`
}

type PollAuthor struct {
	Id        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	AvatarUrl string `json:"avatar_url" db:"avatar_url"`
}

type Poll struct {
	Id string `json:"id" db:"id"`
	// Title free text; ROLÊ polls embed the event weekday in it
	Title    string   `json:"title" db:"title"`
	ImageUrl string   `json:"image_url,omitempty" db:"image_url"`
	Category Category `json:"category" db:"category"`
	// Type enum
	//
	// PollTypeEnquete PollTypePerguntas
	Type PollType `json:"type" db:"type"`
	// Scope enum
	//
	// ScopeMundo ScopeLocal ScopeRole
	Scope Scope `json:"scope" db:"scope"`
	// LocationCity set iff scope is not MUNDO
	LocationCity string   `json:"location_city,omitempty" db:"location_city"`
	Options      []Option `json:"options" db:"options"`
	// TotalVotes kept equal to the option sum by the backend; may lag a
	// local optimistic edit until the next reload
	TotalVotes int        `json:"total_votes" db:"total_votes"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	Author     PollAuthor `json:"author" db:"author"`
	// Status enum
	//
	// PollStatusApproved PollStatusPending PollStatusRejected
	Status PollStatus `json:"status" db:"status"`
	// ModerationReason set iff status is REJECTED
	ModerationReason string `json:"moderation_reason,omitempty" db:"moderation_reason"`
	// UserVote viewer-local; null on the wire when not voted
	UserVote VoteChoice `json:"userVote"`
	// IsFavorited viewer-local
	IsFavorited bool `json:"isFavorited"`
}

// Voted reports whether this viewer has a vote on the poll.
func (p *Poll) Voted() bool { return p.UserVote != "" }

// OptionIndex finds an option by its text key, -1 when absent.
func (p *Poll) OptionIndex(text string) int {
	for i := range p.Options {
		if p.Options[i].Text == text {
			return i
		}
	}
	return -1
}

func (p *Poll) ItemID() string { return p.Id }

// PollDraft is the authenticated create payload.
type PollDraft struct {
	Title        string   `json:"title"`
	Category     Category `json:"category"`
	Type         PollType `json:"type"`
	Scope        Scope    `json:"scope"`
	LocationCity string   `json:"location_city,omitempty"`
	Options      []string `json:"options"`
}
