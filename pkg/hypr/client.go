// Package hypr speaks the Hyprland IPC protocol over its unix sockets.
//
// Hyprland exposes two sockets under
// $XDG_RUNTIME_DIR/hypr/$HYPRLAND_INSTANCE_SIGNATURE/: .socket.sock for
// request/response queries and .socket2.sock for the event stream. The
// client wraps the first, Subscribe the second.
package hypr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrUnavailable is returned by NewClient when the environment does not
// point at a running Hyprland instance.
var ErrUnavailable = errors.New("hypr: compositor not available")

// Workspace is one entry from the j/workspaces query.
type Workspace struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Monitor string `json:"monitor"`
	Windows int    `json:"windows"`
}

// Window is the reply to j/activewindow.
type Window struct {
	Class   string `json:"class"`
	Title   string `json:"title"`
	Address string `json:"address"`
}

// Client issues queries against Hyprland's request socket. A fresh
// connection is dialed per request, matching how hyprctl behaves.
type Client struct {
	dir string
}

// NewClient locates the instance socket directory from the environment.
func NewClient() (*Client, error) {
	runtime := os.Getenv("XDG_RUNTIME_DIR")
	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if runtime == "" || sig == "" {
		return nil, ErrUnavailable
	}
	dir := filepath.Join(runtime, "hypr", sig)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, dir)
	}
	return &Client{dir: dir}, nil
}

func (c *Client) request(ctx context.Context, cmd string, v any) error {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", filepath.Join(c.dir, ".socket.sock"))
	if err != nil {
		return fmt.Errorf("hypr: dial request socket: %w", err)
	}
	defer conn.Close()
	if dl, ok := ctx.Deadline(); ok {
		conn.SetDeadline(dl)
	} else {
		conn.SetDeadline(time.Now().Add(5 * time.Second))
	}
	if _, err := conn.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("hypr: send %q: %w", cmd, err)
	}
	raw, err := io.ReadAll(conn)
	if err != nil {
		return fmt.Errorf("hypr: read reply for %q: %w", cmd, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("hypr: decode reply for %q: %w", cmd, err)
	}
	return nil
}

// Workspaces returns all workspaces sorted by id.
func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	var ws []Workspace
	if err := c.request(ctx, "j/workspaces", &ws); err != nil {
		return nil, err
	}
	sort.Slice(ws, func(i, j int) bool { return ws[i].ID < ws[j].ID })
	return ws, nil
}

// ActiveWorkspace returns the currently focused workspace.
func (c *Client) ActiveWorkspace(ctx context.Context) (Workspace, error) {
	var ws Workspace
	if err := c.request(ctx, "j/activeworkspace", &ws); err != nil {
		return Workspace{}, err
	}
	return ws, nil
}

// ActiveWindow returns the focused window, or ok=false when no window
// has focus. Hyprland answers "Invalid" (not JSON) in that case.
func (c *Client) ActiveWindow(ctx context.Context) (Window, bool, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", filepath.Join(c.dir, ".socket.sock"))
	if err != nil {
		return Window{}, false, fmt.Errorf("hypr: dial request socket: %w", err)
	}
	defer conn.Close()
	if dl, ok := ctx.Deadline(); ok {
		conn.SetDeadline(dl)
	} else {
		conn.SetDeadline(time.Now().Add(5 * time.Second))
	}
	if _, err := conn.Write([]byte("j/activewindow")); err != nil {
		return Window{}, false, fmt.Errorf("hypr: send activewindow: %w", err)
	}
	raw, err := io.ReadAll(conn)
	if err != nil {
		return Window{}, false, fmt.Errorf("hypr: read activewindow: %w", err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "Invalid" || trimmed == "{}" {
		return Window{}, false, nil
	}
	var w Window
	if err := json.Unmarshal(raw, &w); err != nil {
		return Window{}, false, fmt.Errorf("hypr: decode activewindow: %w", err)
	}
	if w.Address == "" {
		return Window{}, false, nil
	}
	return w, true, nil
}
