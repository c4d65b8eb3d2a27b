// Package protocol defines the JSON envelope exchanged over the chat websocket.
//
// Every frame is a tagged envelope:
//
//	{"messageType": "users"|"register"|"message"|"reaction",
//	 "dataArray": ["alice", "bob"] | null,
//	 "data": "..." | null}
//
// Roster frames carry dataArray, register frames carry the username in data,
// and message frames carry a JSON-encoded MessageData object in data.
package protocol

import (
	"bytes"
	"encoding/json"

	"github.com/zhubert/huddle/internal/errors"
)

// MsgType is the envelope tag.
type MsgType string

const (
	MsgUsers    MsgType = "users"
	MsgRegister MsgType = "register"
	MsgMessage  MsgType = "message"
	MsgReaction MsgType = "reaction"
)

// Known reports whether t is one of the four envelope tags.
func (t MsgType) Known() bool {
	switch t {
	case MsgUsers, MsgRegister, MsgMessage, MsgReaction:
		return true
	}
	return false
}

// Envelope is the wire frame. Optional fields encode as null when absent.
type Envelope struct {
	MessageType MsgType  `json:"messageType"`
	DataArray   []string `json:"dataArray"`
	Data        *string  `json:"data"`
}

// MessageData is the payload carried in the data field of a message frame.
type MessageData struct {
	From      string   `json:"from"`
	Message   string   `json:"message"`
	Reactions []string `json:"reactions,omitempty"`
}

func str(s string) *string { return &s }

// NewRegister builds the frame a client sends once on startup.
func NewRegister(username string) Envelope {
	return Envelope{MessageType: MsgRegister, Data: str(username)}
}

// NewMessage builds the frame a client sends when the user submits text.
func NewMessage(text string) Envelope {
	return Envelope{MessageType: MsgMessage, Data: str(text)}
}

// NewUsers builds a roster frame.
func NewUsers(names []string) Envelope {
	if names == nil {
		names = []string{}
	}
	return Envelope{MessageType: MsgUsers, DataArray: names}
}

// NewMessageFrame builds the frame a server broadcasts for a chat message.
func NewMessageFrame(from, text string) (Envelope, error) {
	payload, err := EncodeMessageData(MessageData{From: from, Message: text})
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{MessageType: MsgMessage, Data: str(payload)}, nil
}

// DataString returns the data field, or "" when absent.
func (e Envelope) DataString() string {
	if e.Data == nil {
		return ""
	}
	return *e.Data
}

// marshal encodes v without HTML escaping so chat text keeps <, > and &.
func marshal(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Encode serializes an envelope to its wire form.
func Encode(e Envelope) (string, error) {
	s, err := marshal(e)
	if err != nil {
		return "", errors.E(errors.Op("protocol.Encode"), errors.KindProtocol, err)
	}
	return s, nil
}

// MustEncode is Encode for envelopes built by this package's constructors,
// which always marshal.
func MustEncode(e Envelope) string {
	s, err := Encode(e)
	if err != nil {
		panic(err)
	}
	return s
}

// Decode parses a wire frame. Unknown tags decode successfully; it is up to the
// caller to ignore them.
func Decode(raw string) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return Envelope{}, errors.FrameDecodeFailed(err)
	}
	if e.MessageType == "" {
		return Envelope{}, errors.MissingField("messageType")
	}
	return e, nil
}

// DecodeMessageData parses the data field of a message frame.
func DecodeMessageData(data string) (MessageData, error) {
	var m MessageData
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return MessageData{}, errors.MessageDataDecodeFailed(err)
	}
	return m, nil
}

// EncodeMessageData serializes a message payload for the data field.
func EncodeMessageData(m MessageData) (string, error) {
	s, err := marshal(m)
	if err != nil {
		return "", errors.E(errors.Op("protocol.EncodeMessageData"), errors.KindProtocol, err)
	}
	return s, nil
}
