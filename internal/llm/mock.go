package llm

import (
	"context"
	"strings"
)

// MockClient is a configurable dialogue client for testing. Set the response
// fields to control what GenerateResponse returns.
type MockClient struct {
	Response string
	Err      error

	// Call tracking for assertions
	Calls []string
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	c.Calls = append(c.Calls, prompt)
	if c.Err != nil {
		return "", c.Err
	}
	if c.Response != "" {
		return c.Response, nil
	}
	// Echo the character name from the prompt so unconfigured runs still
	// produce something attributable.
	if name, ok := characterFromPrompt(prompt); ok {
		return "[" + name + " responds - mock dialogue client]", nil
	}
	return "[mock dialogue response]", nil
}

func characterFromPrompt(prompt string) (string, bool) {
	const marker = "You are "
	i := strings.Index(prompt, marker)
	if i < 0 {
		return "", false
	}
	rest := prompt[i+len(marker):]
	if j := strings.IndexAny(rest, ",\n"); j > 0 {
		return strings.TrimSpace(rest[:j]), true
	}
	return "", false
}

// Reset clears recorded calls and configured responses.
func (c *MockClient) Reset() {
	c.Response = ""
	c.Err = nil
	c.Calls = nil
}
