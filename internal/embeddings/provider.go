// Package embeddings turns normalized profile text into vectors through a
// pluggable provider.
package embeddings

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider produces vector representations for text.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

var (
	// ErrProvider matches every failure reported by a provider.
	ErrProvider = errors.New("embedding provider error")
	// ErrEmptyInput is returned without calling the provider when the text is blank.
	ErrEmptyInput = errors.New("empty embedding input")
	// ErrEmptyVector means the provider answered without a vector.
	ErrEmptyVector = errors.New("provider returned an empty vector")
)

// ProviderError describes a failed Embed call. errors.Is(err, ErrProvider)
// holds for every ProviderError; the cause is reachable through Unwrap.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrProvider }

// NewError wraps err as a ProviderError for the named provider.
func NewError(provider string, err error) error {
	return &ProviderError{Provider: provider, Err: err}
}

// StatusError reports a non-2xx answer from the provider.
func StatusError(provider string, status int, msg string) error {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = "unexpected response"
	}
	return &ProviderError{Provider: provider, StatusCode: status, Err: errors.New(msg)}
}

// CheckInput rejects blank text before any network call is made.
func CheckInput(provider, text string) error {
	if strings.TrimSpace(text) == "" {
		return NewError(provider, ErrEmptyInput)
	}
	return nil
}
