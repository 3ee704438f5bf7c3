package protocol

import (
	"bytes"
	"encoding/json"
)

// EventKind enumerates the game event variants the client understands.
type EventKind int

const (
	// EventUnknown marks frames the client does not recognize; they are
	// accepted and ignored downstream.
	EventUnknown EventKind = iota
	// EventDeath signals that the tracked player's character has died.
	EventDeath
	// EventRoundStart signals that the tracked player joined a round.
	EventRoundStart
	// EventRoundEnd signals that the tracked player left the round.
	EventRoundEnd
	// EventBgm announces a background-music track to stream for the
	// current map.
	EventBgm
)

// String returns the event kind name used in log fields.
func (k EventKind) String() string {
	switch k {
	case EventDeath:
		return "death"
	case EventRoundStart:
		return "roundStart"
	case EventRoundEnd:
		return "roundEnd"
	case EventBgm:
		return "bgm"
	default:
		return "unknown"
	}
}

// GameEvent is a single decoded server notification. It is immutable once
// parsed and carries no mutable state.
type GameEvent struct {
	// Kind identifies the event variant.
	Kind EventKind
	// AudioURL is the track location for EventBgm, empty otherwise.
	AudioURL string
	// Raw is a copy of the original frame, set only for EventUnknown.
	Raw []byte
}

// frame mirrors the wire shape of server messages. The server emits both
// camelCase and snake_case field names depending on its version, so each
// field is read under both tags.
type frame struct {
	MsgType         string `json:"msgType"`
	MsgTypeSnake    string `json:"msg_type"`
	AudioURL        string `json:"audioUrl"`
	AudioURLSnake   string `json:"audio_url"`
	StatusType      string `json:"statusType"`
	StatusTypeSnake string `json:"status_type"`
}

func (f *frame) msgType() string {
	if f.MsgType != "" {
		return f.MsgType
	}
	return f.MsgTypeSnake
}

func (f *frame) audioURL() string {
	if f.AudioURL != "" {
		return f.AudioURL
	}
	return f.AudioURLSnake
}

func (f *frame) statusType() string {
	if f.StatusType != "" {
		return f.StatusType
	}
	return f.StatusTypeSnake
}

// Parse decodes a raw server frame into a GameEvent.
//
// Parse never fails: malformed JSON, unknown message types, and well-formed
// messages missing their expected fields all decode to an Unknown event
// carrying a copy of the raw payload. Given the same bytes, Parse always
// produces the same event.
func Parse(raw []byte) GameEvent {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return unknown(raw)
	}

	switch f.msgType() {
	case "gameStatus":
		switch f.statusType() {
		case "died":
			return GameEvent{Kind: EventDeath}
		case "left":
			return GameEvent{Kind: EventRoundEnd}
		case "joined":
			return GameEvent{Kind: EventRoundStart}
		}
	case "bgm":
		if url := f.audioURL(); url != "" {
			return GameEvent{Kind: EventBgm, AudioURL: url}
		}
	}

	return unknown(raw)
}

func unknown(raw []byte) GameEvent {
	return GameEvent{Kind: EventUnknown, Raw: bytes.Clone(raw)}
}
