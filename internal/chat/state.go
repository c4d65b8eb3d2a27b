// Package chat holds the client-side presentation state: the roster of
// connected users, the message feed and the dark-mode flag. The state is a
// cache of whatever the server last pushed; it is only mutated from the UI
// update loop, so it carries no locking.
package chat

import (
	"net/url"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/zhubert/huddle/internal/errors"
	"github.com/zhubert/huddle/internal/logger"
	"github.com/zhubert/huddle/internal/protocol"
)

// AvatarBaseURL is the avatar service the roster links to.
const AvatarBaseURL = "https://avatars.dicebear.com/api/adventurer-neutral/"

// ReactionPalette is the fixed set of reactions offered under every message.
var ReactionPalette = []string{"❤️", "👍", "😂", "😮"}

// UserProfile is a roster entry.
type UserProfile struct {
	Name   string
	Avatar string
}

// Message is one entry in the feed. Reactions is nil until the first reaction.
type Message struct {
	From      string
	Message   string
	Reactions []string
}

// IsImage reports whether the message body is a link to a GIF.
func (m Message) IsImage() bool {
	return strings.HasSuffix(m.Message, ".gif")
}

// AvatarURL derives the avatar for a display name.
func AvatarURL(name string) string {
	return AvatarBaseURL + url.PathEscape(name) + ".svg"
}

// NewUserProfile builds a roster entry for name.
func NewUserProfile(name string) UserProfile {
	return UserProfile{Name: name, Avatar: AvatarURL(name)}
}

// State is the roster, feed and palette flag.
type State struct {
	Users    []UserProfile
	Messages []Message
	DarkMode bool
}

// New returns an empty state with the given initial palette.
func New(darkMode bool) *State {
	return &State{DarkMode: darkMode}
}

// SetRoster replaces the user list wholesale. An empty list clears it.
func (s *State) SetRoster(names []string) {
	users := make([]UserProfile, 0, len(names))
	for _, n := range names {
		users = append(users, NewUserProfile(n))
	}
	s.Users = users
}

// AppendMessage adds m to the end of the feed.
func (s *State) AppendMessage(m Message) {
	s.Messages = append(s.Messages, m)
}

// ToggleDarkMode flips the palette flag and returns the new value.
func (s *State) ToggleDarkMode() bool {
	s.DarkMode = !s.DarkMode
	return s.DarkMode
}

// React appends emoji to the reactions of the message at index. emoji must
// be exactly one grapheme cluster, otherwise it returns a KindInvalid error
// and the message is left alone.
func (s *State) React(index int, emoji string) error {
	if index < 0 || index >= len(s.Messages) {
		return errors.MessageNotFound(index)
	}
	if uniseg.GraphemeClusterCount(emoji) != 1 {
		return errors.InvalidReaction(emoji)
	}
	m := &s.Messages[index]
	if m.Reactions == nil {
		m.Reactions = []string{}
	}
	m.Reactions = append(m.Reactions, emoji)
	return nil
}

// FindUser looks up a roster entry by display name.
func (s *State) FindUser(name string) (UserProfile, bool) {
	for _, u := range s.Users {
		if u.Name == name {
			return u, true
		}
	}
	return UserProfile{}, false
}

// OnlineCount returns the number of users on the roster.
func (s *State) OnlineCount() int {
	return len(s.Users)
}

// HandleFrame applies one inbound websocket frame. It reports whether the
// state changed. Frames with tags the client does not act on are ignored.
func (s *State) HandleFrame(raw string) (bool, error) {
	env, err := protocol.Decode(raw)
	if err != nil {
		return false, err
	}

	switch env.MessageType {
	case protocol.MsgUsers:
		s.SetRoster(env.DataArray)
		return true, nil

	case protocol.MsgMessage:
		if env.Data == nil {
			return false, errors.MissingField("data")
		}
		data, err := protocol.DecodeMessageData(*env.Data)
		if err != nil {
			return false, err
		}
		s.AppendMessage(Message{From: data.From, Message: data.Message, Reactions: data.Reactions})
		return true, nil

	default:
		logger.WithComponent("chat").Debug("ignoring frame", "messageType", string(env.MessageType))
		return false, nil
	}
}
