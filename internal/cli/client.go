package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/phrasebingo/phrasebingo-go/internal/ws"
)

const responseTimeout = 10 * time.Second

// Client is a websocket client for the gateway protocol
type Client struct {
	conn    *websocket.Conn
	verbose bool
}

// Dial connects to the server's websocket endpoint. A non-empty token
// is passed so the server can restore the session's display name.
func Dial(serverURL, token string, verbose bool) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws"

	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", u.String(), err)
	}

	return &Client{conn: conn, verbose: verbose}, nil
}

// Close closes the connection
func (c *Client) Close() {
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = c.conn.Close()
}

// Send writes one event to the server
func (c *Client) Send(event string, payload any) error {
	data, err := ws.Encode(event, payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", event, err)
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Await reads events until one named want arrives and returns its
// payload. An error event fails the call. Session events are passed to
// onSession so the caller can persist the reconnect token; other
// events are skipped.
func (c *Client) Await(want string, onSession func(token string)) (json.RawMessage, error) {
	_ = c.conn.SetReadDeadline(time.Now().Add(responseTimeout))
	return c.await(want, onSession)
}

// TryAwait waits briefly for an event that may or may not arrive,
// returning nil payload without error if it does not
func (c *Client) TryAwait(want string, wait time.Duration) (json.RawMessage, error) {
	_ = c.conn.SetReadDeadline(time.Now().Add(wait))

	data, err := c.await(want, nil)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (c *Client) await(want string, onSession func(token string)) (json.RawMessage, error) {
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("connection closed waiting for %s: %w", want, err)
		}

		var env ws.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("malformed server message: %w", err)
		}

		switch env.Event {
		case want:
			return env.Data, nil
		case ws.EventSession:
			var payload ws.SessionPayload
			if err := json.Unmarshal(env.Data, &payload); err == nil && onSession != nil {
				onSession(payload.Token)
			}
		case ws.EventError:
			var payload ws.ErrorPayload
			if err := json.Unmarshal(env.Data, &payload); err != nil {
				return nil, errors.New("server reported an error")
			}
			return nil, errors.New(payload.Message)
		default:
			if c.verbose {
				fmt.Fprintf(os.Stderr, "skipping event: %s\n", env.Event)
			}
		}
	}
}

// dial connects using the global CLI config and saves any session
// token the server issues during the exchange
func dial() (*Client, error) {
	return Dial(cfg.ServerURL, cfg.Token, cfg.Verbose)
}

func saveSessionToken(token string) {
	if err := cfg.SaveToken(token); err != nil && cfg.Verbose {
		fmt.Fprintf(os.Stderr, "could not save session token: %v\n", err)
	}
}
