package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

// TestContext carries one scenario's HTTP state against a running server.
type TestContext struct {
	baseURL string
	client  *http.Client
	runID   string

	token      string
	status     int
	body       []byte
	remembered map[string]string
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset prepares the context for a new scenario. The run ID keeps emails and
// codes unique when scenarios share a long-lived server.
func (tc *TestContext) Reset() {
	tc.token = ""
	tc.status = 0
	tc.body = nil
	tc.remembered = make(map[string]string)
	tc.runID = fmt.Sprintf("%06d", rand.IntN(1_000_000))
}

// Expand substitutes {run} and {name} placeholders with the run ID and
// remembered values.
func (tc *TestContext) Expand(s string) string {
	s = strings.ReplaceAll(s, "{run}", tc.runID)
	for name, value := range tc.remembered {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}

func (tc *TestContext) Do(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, tc.baseURL+tc.Expand(path), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.token != "" {
		req.Header.Set("Authorization", "Bearer "+tc.token)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	tc.status = resp.StatusCode
	tc.body, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) Status() int { return tc.status }

func (tc *TestContext) SetToken(token string) { tc.token = token }

// ResponseField reads a dotted path such as "user.id" or "learners.0.name"
// from the last JSON response.
func (tc *TestContext) ResponseField(path string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.body, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %s", tc.body)
	}
	for _, part := range strings.Split(path, ".") {
		switch node := doc.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q missing in %s", path, tc.body)
			}
			doc = v
		case []any:
			var i int
			if _, err := fmt.Sscanf(part, "%d", &i); err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %s", part, tc.body)
			}
			doc = node[i]
		default:
			return nil, fmt.Errorf("field %q missing in %s", path, tc.body)
		}
	}
	return doc, nil
}

func (tc *TestContext) Remember(name, value string) { tc.remembered[name] = value }
