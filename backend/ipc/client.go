package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"
)

var ErrPingFail = errors.New("ping failed")

// requests are routed by path only; the host is never resolved
const baseURL = "http://lapwatch"

type Client struct {
	httpC http.Client
}

// Connect attempts to connect to the IPC socket as client.
func Connect() (*Client, error) {
	conn, err := Dial()
	if err != nil {
		return nil, err
	}
	conn.Close()
	client := newClient(func() (net.Conn, error) { return Dial() })
	if err := client.Ping(); err != nil {
		log.Println("ping error")
		return nil, err
	}
	return client, nil
}

func newClient(dial func() (net.Conn, error)) *Client {
	return &Client{httpC: http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
				return dial()
			},
		},
	}}
}

func (c *Client) Ping() error {
	if c.makeSimpleRequest(http.MethodGet, PingPath) != nil {
		return ErrPingFail
	}
	return nil
}

func (c *Client) Toggle() error {
	return c.makeSimpleRequest(http.MethodPost, TogglePath)
}

func (c *Client) Start() error {
	return c.makeSimpleRequest(http.MethodPost, StartPath)
}

func (c *Client) Stop() error {
	return c.makeSimpleRequest(http.MethodPost, StopPath)
}

func (c *Client) Reset() error {
	return c.makeSimpleRequest(http.MethodPost, ResetPath)
}

func (c *Client) RecordLap() error {
	return c.makeSimpleRequest(http.MethodPost, LapPath)
}

func (c *Client) SetTheme(dark bool) error {
	return c.makeSimpleRequest(http.MethodPost, SetThemePath(dark))
}

func (c *Client) Show() error {
	return c.makeSimpleRequest(http.MethodPost, ShowPath)
}

func (c *Client) Quit() error {
	return c.makeSimpleRequest(http.MethodPost, QuitPath)
}

func (c *Client) State() (*State, error) {
	resp, err := c.httpC.Get(baseURL + StatePath)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, readErr(resp)
	}
	var s State
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}
	return &s, nil
}

func (c *Client) makeSimpleRequest(method string, path string) error {
	var resp *http.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = c.httpC.Get(baseURL + path)
	case http.MethodPost:
		resp, err = c.httpC.Post(baseURL+path, "application/json", nil)
	}

	if err != nil {
		log.Printf("http err: %v\n", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return readErr(resp)
	}
	return nil
}

func readErr(resp *http.Response) error {
	var r Response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil || r.Error == "" {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return errors.New(r.Error)
}
