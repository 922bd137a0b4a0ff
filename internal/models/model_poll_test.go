package models

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
)

func TestPollUserVoteMarshalsNullWhenUnset(t *testing.T) {
	p := Poll{Id: "p-1", Title: "Melhor coxinha?"}

	raw, err := json.Marshal(&p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !bytes.Contains(raw, []byte(`"userVote":null`)) {
		t.Errorf("non-voted poll = %s, want explicit userVote null", raw)
	}

	p.UserVote = "Coxinha"
	raw, err = json.Marshal(&p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !bytes.Contains(raw, []byte(`"userVote":"Coxinha"`)) {
		t.Errorf("voted poll = %s, want userVote text", raw)
	}
}

func TestVoteChoiceUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want VoteChoice
	}{
		{"null clears", `null`, ""},
		{"text kept", `"Pastel"`, "Pastel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v VoteChoice = "stale"
			if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
			}
			if v != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, v, tt.want)
			}
		})
	}
}
