package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	p.calls++
	return p.text, p.err
}

func TestGenerateUsesFirstProvider(t *testing.T) {
	first := &fakeProvider{name: "first", text: "hello"}
	second := &fakeProvider{name: "second", text: "unused"}

	client := NewClient(first, second)

	text, err := client.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "hello" {
		t.Errorf("Expected 'hello', got %q", text)
	}
	if second.calls != 0 {
		t.Errorf("Expected second provider untouched, got %d calls", second.calls)
	}
}

func TestGenerateFallsBackOnFailure(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("quota exceeded")}
	second := &fakeProvider{name: "second", text: "fallback"}

	client := NewClient(first, second)

	text, err := client.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "fallback" {
		t.Errorf("Expected 'fallback', got %q", text)
	}
	if first.calls != 1 {
		t.Errorf("Expected first provider tried once, got %d calls", first.calls)
	}
}

func TestGenerateAggregatesAllFailures(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("quota exceeded")}
	second := &fakeProvider{name: "second", err: errors.New("timeout")}

	client := NewClient(first, second)

	_, err := client.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	for _, want := range []string{"first", "quota exceeded", "second", "timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %q, got %q", want, err.Error())
		}
	}
}

func TestGenerateWithoutProviders(t *testing.T) {
	client := NewClient()

	if client.Available() {
		t.Error("Expected client to report unavailable")
	}

	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrNoProviders) {
		t.Errorf("Expected ErrNoProviders, got %v", err)
	}
}
