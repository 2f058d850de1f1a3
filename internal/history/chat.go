package history

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// chatFallback replaces the assistant's answer when the insights call
// fails, so the thread is never left broken.
const chatFallback = "Sorry, something went wrong while contacting the AI assistant."

// Welcome is the placeholder shown while the thread is empty.
const Welcome = "Hi! I'm here to help you with your distance history. Ask me anything!"

// Message is one chat bubble.
type Message struct {
	ID        string
	Text      string
	IsUser    bool
	Timestamp time.Time
}

type chatState struct {
	open      bool
	messages  []Message
	input     string
	typing    bool
	sessionID string
}

func newChatState() chatState {
	// One session id per view mount; the server scopes chat memory by it.
	return chatState{sessionID: uuid.NewString()}
}

// ChatOpen reports whether the chat panel is open.
func (v *View) ChatOpen() bool { return v.chat.open }

// OpenChat opens the panel. The thread starts empty.
func (v *View) OpenChat() { v.chat.open = true }

// CloseChat closes the panel and discards the whole thread.
func (v *View) CloseChat() {
	v.chat.open = false
	v.chat.messages = nil
	v.chat.typing = false
	v.chat.input = ""
}

// SessionID returns the chat session identifier for this mount.
func (v *View) SessionID() string { return v.chat.sessionID }

// Messages returns the thread, oldest first.
func (v *View) Messages() []Message { return v.chat.messages }

// IsTyping reports whether an assistant reply is pending.
func (v *View) IsTyping() bool { return v.chat.typing }

// Input returns the draft message text.
func (v *View) Input() string { return v.chat.input }

// SetInput replaces the draft message text.
func (v *View) SetInput(text string) { v.chat.input = text }

// SendMessage submits the draft. Blank or whitespace-only input is a
// no-op. The user message is appended immediately and the input cleared;
// on failure a fixed fallback assistant message is appended instead of an
// answer. The typing flag is cleared either way.
func (v *View) SendMessage(ctx context.Context) {
	text := v.chat.input
	if strings.TrimSpace(text) == "" {
		return
	}

	v.chat.messages = append(v.chat.messages, Message{
		ID:        uuid.NewString(),
		Text:      text,
		IsUser:    true,
		Timestamp: time.Now(),
	})
	v.chat.input = ""
	v.chat.typing = true

	reply, err := v.client.HistoryInsights(ctx, text, v.chat.sessionID)
	answer := chatFallback
	if err == nil {
		answer = reply.Answer
	}
	v.chat.messages = append(v.chat.messages, Message{
		ID:        uuid.NewString(),
		Text:      answer,
		IsUser:    false,
		Timestamp: time.Now(),
	})
	v.chat.typing = false
}
