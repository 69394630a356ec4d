package hypr

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"
)

// EventKind names the subset of socket2 events the bar reacts to.
type EventKind string

const (
	WorkspaceChanged   EventKind = "workspace"
	WorkspaceCreated   EventKind = "createworkspace"
	WorkspaceDestroyed EventKind = "destroyworkspace"
	ActiveWindow       EventKind = "activewindow"
)

// Event is one parsed line from the event socket.
type Event struct {
	Kind EventKind

	// WorkspaceID is set for the workspace events. The v2 variants
	// carry a numeric id; the v1 forms only a name, in which case the
	// id is parsed from the name when it is numeric and left 0 otherwise.
	WorkspaceID   int
	WorkspaceName string

	// Window fields, set for ActiveWindow. HasWindow is false when the
	// event announces that focus left every window.
	Class     string
	Title     string
	HasWindow bool
}

// ParseEventLine parses one "EVENT>>DATA" line. ok is false for events
// the bar does not care about or malformed lines.
func ParseEventLine(line string) (Event, bool) {
	name, data, found := strings.Cut(line, ">>")
	if !found {
		return Event{}, false
	}
	switch name {
	case "workspace":
		return Event{Kind: WorkspaceChanged, WorkspaceID: atoiOrZero(data), WorkspaceName: data}, true
	case "workspacev2":
		id, wsName := splitIDName(data)
		return Event{Kind: WorkspaceChanged, WorkspaceID: id, WorkspaceName: wsName}, true
	case "createworkspace":
		return Event{Kind: WorkspaceCreated, WorkspaceID: atoiOrZero(data), WorkspaceName: data}, true
	case "createworkspacev2":
		id, wsName := splitIDName(data)
		return Event{Kind: WorkspaceCreated, WorkspaceID: id, WorkspaceName: wsName}, true
	case "destroyworkspace":
		return Event{Kind: WorkspaceDestroyed, WorkspaceID: atoiOrZero(data), WorkspaceName: data}, true
	case "destroyworkspacev2":
		id, wsName := splitIDName(data)
		return Event{Kind: WorkspaceDestroyed, WorkspaceID: id, WorkspaceName: wsName}, true
	case "activewindow":
		if data == "" || data == "," {
			return Event{Kind: ActiveWindow, HasWindow: false}, true
		}
		class, title, _ := strings.Cut(data, ",")
		return Event{Kind: ActiveWindow, Class: class, Title: title, HasWindow: true}, true
	default:
		return Event{}, false
	}
}

func splitIDName(data string) (int, string) {
	idStr, name, found := strings.Cut(data, ",")
	if !found {
		return atoiOrZero(data), data
	}
	return atoiOrZero(idStr), name
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Subscribe connects to the event socket and calls handler for each
// recognized event until ctx is cancelled or the connection drops. A
// dropped connection is reported as an error so the caller can reconnect.
func (c *Client) Subscribe(ctx context.Context, handler func(Event)) error {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", filepath.Join(c.dir, ".socket2.sock"))
	if err != nil {
		return fmt.Errorf("hypr: dial event socket: %w", err)
	}
	defer conn.Close()

	// Closing from the helper goroutine unblocks the scanner on cancel;
	// the deferred Close covers the normal drop path.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		ev, ok := ParseEventLine(sc.Text())
		if !ok {
			continue
		}
		handler(ev)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("hypr: event stream: %w", err)
	}
	return fmt.Errorf("hypr: event socket closed")
}
