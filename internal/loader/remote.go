package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// IntrospectionQuery is sent to endpoints by Fetcher.
const IntrospectionQuery = `query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types { ...FullType }
  }
}

fragment FullType on __Type {
  kind
  name
  description
  fields(includeDeprecated: true) {
    name
    description
    args { ...InputValue }
    type { ...TypeRef }
  }
  inputFields { ...InputValue }
  interfaces { ...TypeRef }
  enumValues(includeDeprecated: true) { name description }
  possibleTypes { ...TypeRef }
}

fragment InputValue on __InputValue {
  name
  description
  type { ...TypeRef }
}

fragment TypeRef on __Type {
  kind
  name
  ofType { kind name ofType { kind name ofType { kind name ofType {
    kind name ofType { kind name ofType { kind name ofType { kind name } } }
  } } } }
}`

// maxResponseSize bounds introspection responses read from endpoints.
const maxResponseSize = 32 << 20

// Fetcher downloads introspection results from GraphQL endpoints.
type Fetcher struct {
	client *http.Client
	token  string
}

// NewFetcher creates a Fetcher. A non-empty token is sent as a bearer token.
func NewFetcher(token string) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		token: token,
	}
}

// Fetch runs the introspection query against endpoint and returns the raw
// JSON response, ready for the introspection loader.
func (f *Fetcher) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{
		"operationName": "IntrospectionQuery",
		"query":         IntrospectionQuery,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode introspection query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("introspection failed with status %d", resp.StatusCode)
	}

	var check struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &check); err != nil {
		return nil, fmt.Errorf("invalid introspection response: %w", err)
	}
	if len(check.Errors) > 0 {
		return nil, fmt.Errorf("introspection failed: %s", check.Errors[0].Message)
	}
	return body, nil
}

func (f *Fetcher) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "gqlg/1.0")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
}
