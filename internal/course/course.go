// Package course carries shared course related state to the pages rendered
// inside the shell. The shell treats it as opaque and only passes it along.
package course

import (
	"context"
	"errors"
	"strings"
)

var ErrNoContext = errors.New("course context not available")

// Context is the state shared with every page.
type Context struct {
	Faculty string
	Program string
}

// Provider resolves the course context for a request.
type Provider interface {
	CourseContext(ctx context.Context) (Context, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (Context, error)

func (f ProviderFunc) CourseContext(ctx context.Context) (Context, error) {
	return f(ctx)
}

// StaticProvider returns the same context for every request.
type StaticProvider struct {
	value Context
}

func NewStaticProvider(faculty, program string) *StaticProvider {
	return &StaticProvider{value: Context{
		Faculty: strings.TrimSpace(faculty),
		Program: strings.TrimSpace(program),
	}}
}

func (p *StaticProvider) CourseContext(context.Context) (Context, error) {
	return p.value, nil
}

type contextKey struct{}

func WithContext(ctx context.Context, value Context) context.Context {
	return context.WithValue(ctx, contextKey{}, value)
}

func FromContext(ctx context.Context) (Context, error) {
	if ctx == nil {
		return Context{}, ErrNoContext
	}
	value, ok := ctx.Value(contextKey{}).(Context)
	if !ok {
		return Context{}, ErrNoContext
	}
	return value, nil
}
