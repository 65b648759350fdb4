package transcription

import (
	"context"
	"testing"

	"github.com/tmm22/speechkit/logger"
)

func TestChain_OrderAndDelegation(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(inner Provider) Provider {
			return &tagProvider{inner: inner, name: name, order: &order}
		}
	}

	stub := &stubProvider{name: "openai", text: "out"}
	wrapped := Chain(tag("outer"), tag("inner"))(stub)

	resp, err := wrapped.Transcribe(context.Background(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text != "out" {
		t.Errorf("Text = %q", resp.Text)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v", order)
	}
	if wrapped.Name() != "openai" {
		t.Errorf("Name = %q", wrapped.Name())
	}
}

type tagProvider struct {
	inner Provider
	name  string
	order *[]string
}

func (p *tagProvider) Name() string                       { return p.inner.Name() }
func (p *tagProvider) IsAvailable(ctx context.Context) bool { return p.inner.IsAvailable(ctx) }
func (p *tagProvider) Transcribe(ctx context.Context, req Request) (*Response, error) {
	*p.order = append(*p.order, p.name)
	return p.inner.Transcribe(ctx, req)
}

func TestObservabilityMiddleware_PassThrough(t *testing.T) {
	stub := &stubProvider{name: "groq", text: "hello"}
	wrapped := Chain(
		WithLogging(logger.NewDefault("test")),
		WithTracing(),
		WithMetrics(),
	)(stub)

	resp, err := wrapped.Transcribe(context.Background(), Request{Model: Model{Name: "whisper-large-v3"}})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text != "hello" {
		t.Errorf("Text = %q", resp.Text)
	}

	fatal := APIRequestFailed(500, "boom")
	stub.err = fatal
	if _, err := wrapped.Transcribe(context.Background(), Request{}); err != fatal {
		t.Errorf("err = %v, want adapter error unchanged", err)
	}
}
