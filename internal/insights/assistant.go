// Package insights answers questions about a user's route history by
// retrieving relevant records and asking an LLM, with short per-session
// conversation memory.
package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/npatel/wayfinder/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Fallback answers, returned instead of errors so the chat thread is never
// left broken.
const (
	noHistoryAnswer = "You don't have any route history yet."
	llmDownAnswer   = "Sorry — I could not analyze the history right now."
)

// maxHistoryRows caps how much history feeds the retrieval step.
const maxHistoryRows = 500

// topK is how many retrieved routes go into the prompt.
const topK = 5

// systemPrompt pins the assistant to the provided data.
const systemPrompt = "You are a route history assistant. " +
	"Answer only from provided data. Do not hallucinate. " +
	"If answer not found, say you don't know."

// Completer produces a chat completion for a system/user prompt pair.
// Satisfied by the go-openai client adapter; tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Assistant answers history questions for authenticated users.
type Assistant struct {
	db        *gorm.DB
	completer Completer
	memory    *MemoryStore
}

// NewAssistant builds an Assistant over the given database and completer.
func NewAssistant(db *gorm.DB, completer Completer) *Assistant {
	return &Assistant{
		db:        db,
		completer: completer,
		memory:    NewMemoryStore(),
	}
}

// Memory exposes the store so the server janitor can expire idle sessions.
func (a *Assistant) Memory() *MemoryStore { return a.memory }

// Answer responds to a question about the user's route history. LLM
// failures degrade to a fixed answer rather than an error.
func (a *Assistant) Answer(ctx context.Context, userID uint, sessionID, question string) (string, error) {
	var rows []models.RouteQuery
	if err := a.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(maxHistoryRows).
		Find(&rows).Error; err != nil {
		return "", fmt.Errorf("insights: load history: %w", err)
	}
	if len(rows) == 0 {
		return noHistoryAnswer, nil
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, historyToText(r))
	}
	retrieved := retrieve(question, lines, topK)

	prompt := buildPrompt(question, retrieved, a.memory.Load(userID, sessionID))
	answer, err := a.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		logrus.WithError(err).Error("insights: llm call failed")
		answer = llmDownAnswer
	}

	a.memory.Save(userID, sessionID, "user", question)
	a.memory.Save(userID, sessionID, "assistant", answer)
	return answer, nil
}

// buildPrompt assembles recent conversation, retrieved routes, and the
// question into one user prompt.
func buildPrompt(question string, retrieved []string, memory []Turn) string {
	if len(memory) > promptWindow {
		memory = memory[len(memory)-promptWindow:]
	}
	var mem strings.Builder
	for _, m := range memory {
		fmt.Fprintf(&mem, "%s: %s\n", m.Role, m.Content)
	}

	return "You are a route history assistant.\n" +
		"Answer ONLY using provided route records.\n" +
		"If data is missing or insufficient, say you don't know.\n" +
		"Keep answers under 3 sentences.\n\n" +
		"Conversation:\n" + mem.String() + "\n" +
		"Route records:\n" + strings.Join(retrieved, "\n") + "\n\n" +
		"Question:\n" + question
}
