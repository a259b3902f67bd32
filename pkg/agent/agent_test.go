package agent

import (
	"context"
	"errors"
	"strings"
	"sync"

	"azquote-api/pkg/llm"
)

// fakeLLM replays scripted replies in order and records every request.
type fakeLLM struct {
	mu       sync.Mutex
	replies  []string
	err      error
	requests []*llm.ChatRequest
}

func (f *fakeLLM) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.replies) == 0 {
		return nil, errors.New("fakeLLM: no scripted replies left")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]

	return &llm.ChatResponse{
		Model: req.Model,
		Choices: []llm.Choice{
			{Message: llm.Message{Role: "assistant", Content: reply}, FinishReason: "stop"},
		},
	}, nil
}

// ChatStream serves the next scripted reply split into word-sized deltas,
// mimicking how completions arrive chunk by chunk.
func (f *fakeLLM) ChatStream(ctx context.Context, req *llm.ChatRequest) (<-chan llm.StreamResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.replies) == 0 {
		return nil, errors.New("fakeLLM: no scripted replies left")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]

	out := make(chan llm.StreamResponse)
	go func() {
		defer close(out)
		for i, word := range strings.SplitAfter(reply, " ") {
			resp := llm.StreamResponse{
				Model: req.Model,
				Choices: []llm.StreamChoice{
					{Delta: llm.Delta{Content: word}},
				},
			}
			if i == 0 {
				resp.Choices[0].Delta.Role = "assistant"
			}
			out <- resp
		}
	}()
	return out, nil
}

func (f *fakeLLM) GetConfig() *llm.Config { return &llm.Config{} }

func (f *fakeLLM) Close() error { return nil }

// fakeResolver maps "serviceName/sku/region" to a fixed hourly price and
// returns 0.0 for everything else, like the real resolver.
type fakeResolver struct {
	mu     sync.Mutex
	prices map[string]float64
	calls  []string
}

func (f *fakeResolver) GetPrice(ctx context.Context, serviceName, sku, region string) float64 {
	key := serviceName + "/" + sku + "/" + region

	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()

	return f.prices[key]
}
