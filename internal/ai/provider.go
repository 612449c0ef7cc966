package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Conversation roles understood by every provider.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

var ErrEmptyResponse = errors.New("empty response from AI provider")

// Part is either text or an inline base64 image.
type Part struct {
	Text     string
	MimeType string
	Data     string
}

func (p Part) IsImage() bool {
	return p.Data != ""
}

// DataURL re-encodes an image part as a data URL.
func (p Part) DataURL() string {
	return "data:" + p.MimeType + ";base64," + p.Data
}

type Content struct {
	Role  string
	Parts []Part
}

// Provider is a generative model whose system instruction was bound when the
// client was constructed.
type Provider interface {
	Name() string
	Generate(ctx context.Context, contents []Content) (string, error)
}

// Chain tries each provider in order and returns the first successful reply.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Name() string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

func (c *Chain) Generate(ctx context.Context, contents []Content) (string, error) {
	if len(c.providers) == 0 {
		return "", errors.New("no AI provider available")
	}

	var errs []error
	for _, p := range c.providers {
		text, err := p.Generate(ctx, contents)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		slog.Warn("AI provider failed", "provider", p.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}
	return "", errors.Join(errs...)
}
