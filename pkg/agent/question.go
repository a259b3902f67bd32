package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"azquote-api/pkg/llm"
)

// QuestionAgent drives the multi-turn requirements conversation. Its prompt
// instructs the model to keep asking until enough detail exists to size an
// Azure deployment, then emit the done sentinel.
type QuestionAgent struct {
	client   llm.LLMClient
	cfg      AgentConfig
	sentinel string
	tmpl     *llm.PromptTemplate
}

// NewQuestionAgent loads the question prompt template and binds it to the
// configured model alias.
func NewQuestionAgent(client llm.LLMClient, cfg AgentConfig, sentinel string) (*QuestionAgent, error) {
	if client == nil {
		return nil, errors.New("agent: llm client cannot be nil")
	}
	tmpl, err := llm.NewPromptTemplate(cfg.PromptTemplate, nil)
	if err != nil {
		return nil, fmt.Errorf("agent: question prompt: %w", err)
	}
	return &QuestionAgent{client: client, cfg: cfg, sentinel: sentinel, tmpl: tmpl}, nil
}

// Thread accumulates one requirements conversation. Not safe for concurrent
// use; each session owns its thread.
type Thread struct {
	messages []llm.Message
}

// NewThread starts a conversation seeded with the rendered system prompt.
func (a *QuestionAgent) NewThread() (*Thread, error) {
	system, err := a.tmpl.Render(map[string]any{"DoneSentinel": a.sentinel})
	if err != nil {
		return nil, err
	}
	return &Thread{
		messages: []llm.Message{{Role: "system", Content: system}},
	}, nil
}

// RestoreThread rebuilds a thread from previously stored messages, for
// session-backed conversations.
func RestoreThread(messages []llm.Message) *Thread {
	cp := make([]llm.Message, len(messages))
	copy(cp, messages)
	return &Thread{messages: cp}
}

// Messages returns a copy of the conversation history.
func (t *Thread) Messages() []llm.Message {
	cp := make([]llm.Message, len(t.messages))
	copy(cp, t.messages)
	return cp
}

// Ask appends the user message, queries the model, records the reply, and
// reports whether the agent signalled completion.
func (a *QuestionAgent) Ask(ctx context.Context, t *Thread, userMsg string) (reply string, done bool, err error) {
	if t == nil {
		return "", false, errors.New("agent: thread cannot be nil")
	}

	t.messages = append(t.messages, llm.Message{Role: "user", Content: userMsg})

	resp, err := a.client.Chat(ctx, &llm.ChatRequest{
		Model:       a.cfg.Model,
		Messages:    t.messages,
		Temperature: a.cfg.Temperature,
		MaxTokens:   a.cfg.MaxTokens,
	})
	if err != nil {
		// Roll back the user turn so a retry does not duplicate it.
		t.messages = t.messages[:len(t.messages)-1]
		return "", false, fmt.Errorf("agent: question chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		t.messages = t.messages[:len(t.messages)-1]
		return "", false, errors.New("agent: question chat returned no choices")
	}

	reply = strings.TrimSpace(resp.Choices[0].Message.Content)
	t.messages = append(t.messages, llm.Message{Role: "assistant", Content: reply})
	return reply, strings.Contains(reply, a.sentinel), nil
}

// AskStream behaves like Ask but streams the reply, invoking onDelta for each
// content fragment as it arrives. The full reply is accumulated and recorded
// on the thread once the stream ends.
func (a *QuestionAgent) AskStream(ctx context.Context, t *Thread, userMsg string, onDelta func(string)) (reply string, done bool, err error) {
	if t == nil {
		return "", false, errors.New("agent: thread cannot be nil")
	}

	t.messages = append(t.messages, llm.Message{Role: "user", Content: userMsg})

	stream, err := a.client.ChatStream(ctx, &llm.ChatRequest{
		Model:       a.cfg.Model,
		Messages:    t.messages,
		Temperature: a.cfg.Temperature,
		MaxTokens:   a.cfg.MaxTokens,
	})
	if err != nil {
		// Roll back the user turn so a retry does not duplicate it.
		t.messages = t.messages[:len(t.messages)-1]
		return "", false, fmt.Errorf("agent: question chat stream: %w", err)
	}

	var b strings.Builder
	for resp := range stream {
		for _, choice := range resp.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			b.WriteString(choice.Delta.Content)
			if onDelta != nil {
				onDelta(choice.Delta.Content)
			}
		}
	}

	reply = strings.TrimSpace(b.String())
	if reply == "" {
		t.messages = t.messages[:len(t.messages)-1]
		return "", false, errors.New("agent: question chat stream returned no content")
	}

	t.messages = append(t.messages, llm.Message{Role: "assistant", Content: reply})
	return reply, strings.Contains(reply, a.sentinel), nil
}

// RequirementsTranscript flattens the conversation into "role: content" lines
// for the downstream agents. The system prompt is excluded.
func (t *Thread) RequirementsTranscript() string {
	var b strings.Builder
	for _, m := range t.messages {
		if m.Role == "system" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
