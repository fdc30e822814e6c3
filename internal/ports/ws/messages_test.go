package ws

import (
	"encoding/json"
	"strings"
	"testing"

	"livechess/internal/domain"
)

func TestEncodeEnvelope(t *testing.T) {
	b, err := Encode(MsgError, ErrorPayload{Code: "bad_payload", Message: "nope"})
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	var m Msg
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if m.T != MsgError {
		t.Fatalf("envelope type = %q, want %q", m.T, MsgError)
	}

	var p ErrorPayload
	if err := json.Unmarshal(m.M, &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if p.Code != "bad_payload" {
		t.Fatalf("payload code = %q", p.Code)
	}
}

func TestMovePayloadWireShape(t *testing.T) {
	raw := `{"from_x":1,"from_y":0,"to_x":2,"to_y":2,"checksum":7}`

	var p MovePayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal move payload: %v", err)
	}

	want := domain.Move{FromX: 1, FromY: 0, ToX: 2, ToY: 2}
	if p.Move != want {
		t.Fatalf("move = %+v, want %+v", p.Move, want)
	}
	if p.Checksum != 7 {
		t.Fatalf("checksum = %d, want 7", p.Checksum)
	}
}

func TestStatePayloadOmitsYouOnBroadcast(t *testing.T) {
	b, err := json.Marshal(StatePayload{Checksum: 1})
	if err != nil {
		t.Fatalf("marshal state payload: %v", err)
	}
	if strings.Contains(string(b), `"you"`) {
		t.Fatalf("broadcast state must omit the you field, got %s", b)
	}
}
