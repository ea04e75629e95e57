package socket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
)

// Client connects to the faq daemon over a Unix socket.
type Client struct {
	sockPath string
}

// NewClient creates a client that will connect to the given socket path.
func NewClient(sockPath string) *Client {
	return &Client{sockPath: sockPath}
}

// Ask sends a question and returns the answer.
func (c *Client) Ask(text string) (*AskResult, error) {
	var result AskResult
	if err := c.do(MethodAsk, AskParams{Text: text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Entries lists the active knowledge base.
func (c *Client) Entries() (*EntriesResult, error) {
	var result EntriesResult
	if err := c.do(MethodEntries, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Suggestions returns the example prompts of the active knowledge base.
func (c *Client) Suggestions() ([]string, error) {
	var result SuggestionsResult
	if err := c.do(MethodSuggestions, nil, &result); err != nil {
		return nil, err
	}
	return result.Suggestions, nil
}

// Health sends a health check request.
func (c *Client) Health() (*HealthResult, error) {
	var result HealthResult
	if err := c.do(MethodHealth, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reload asks the daemon to re-read its knowledge base source.
func (c *Client) Reload() (*ReloadResult, error) {
	var result ReloadResult
	if err := c.do(MethodReload, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Shutdown sends a shutdown request to the daemon.
func (c *Client) Shutdown() error {
	return c.do(MethodShutdown, nil, nil)
}

// Ping checks if the daemon is reachable.
func (c *Client) Ping() bool {
	conn, err := net.DialTimeout("unix", c.sockPath, 500*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// do performs one call and decodes the result into out (if non-nil).
func (c *Client) do(method string, params, out interface{}) error {
	resp, err := c.call(Request{
		ID:     uuid.NewString(),
		Method: method,
		Params: params,
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	// Re-marshal the generic result into the typed struct
	resultJSON, err := json.Marshal(resp.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := json.Unmarshal(resultJSON, out); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	return nil
}

func (c *Client) call(req Request) (*Response, error) {
	return c.callWithTimeout(req, 5*time.Second)
}

func (c *Client) callWithTimeout(req Request, timeout time.Duration) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.sockPath, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Set deadline for the whole request/response
	conn.SetDeadline(time.Now().Add(timeout))

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return nil, fmt.Errorf("empty response")
	}

	var resp Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("response id %q does not match request %q", resp.ID, req.ID)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("server error: %s", resp.Error)
	}
	return &resp, nil
}
