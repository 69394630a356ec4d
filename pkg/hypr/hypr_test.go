package hypr

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// --- event parsing ---

func TestParseEventLine(t *testing.T) {
	tests := []struct {
		line string
		want Event
		ok   bool
	}{
		{"workspace>>3", Event{Kind: WorkspaceChanged, WorkspaceID: 3, WorkspaceName: "3"}, true},
		{"workspacev2>>3,web", Event{Kind: WorkspaceChanged, WorkspaceID: 3, WorkspaceName: "web"}, true},
		{"createworkspace>>5", Event{Kind: WorkspaceCreated, WorkspaceID: 5, WorkspaceName: "5"}, true},
		{"createworkspacev2>>5,mail", Event{Kind: WorkspaceCreated, WorkspaceID: 5, WorkspaceName: "mail"}, true},
		{"destroyworkspace>>2", Event{Kind: WorkspaceDestroyed, WorkspaceID: 2, WorkspaceName: "2"}, true},
		{"destroyworkspacev2>>2,chat", Event{Kind: WorkspaceDestroyed, WorkspaceID: 2, WorkspaceName: "chat"}, true},
		{"activewindow>>firefox,Mozilla Firefox", Event{Kind: ActiveWindow, Class: "firefox", Title: "Mozilla Firefox", HasWindow: true}, true},
		{"activewindow>>", Event{Kind: ActiveWindow, HasWindow: false}, true},
		{"activewindow>>,", Event{Kind: ActiveWindow, HasWindow: false}, true},
		// Titles may themselves contain commas; only the first splits.
		{"activewindow>>kitty,vim: a,b.go", Event{Kind: ActiveWindow, Class: "kitty", Title: "vim: a,b.go", HasWindow: true}, true},
		// Named workspaces without a numeric id parse as id 0.
		{"workspace>>special", Event{Kind: WorkspaceChanged, WorkspaceID: 0, WorkspaceName: "special"}, true},
		{"monitoradded>>DP-1", Event{}, false},
		{"not a protocol line", Event{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseEventLine(tt.line)
		if ok != tt.ok {
			t.Errorf("ParseEventLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseEventLine(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

// --- client ---

func TestNewClient_MissingEnv(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")
	if _, err := NewClient(); err == nil {
		t.Error("expected ErrUnavailable without environment")
	}
}

// fakeSocket serves one request connection with a canned reply.
func fakeSocket(t *testing.T, dir, name string, reply string) {
	t.Helper()
	ln, err := net.Listen("unix", filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			buf := make([]byte, 256)
			conn.Read(buf)
			conn.Write([]byte(reply))
			conn.Close()
		}
	}()
}

func TestClient_Workspaces(t *testing.T) {
	dir := shortTempDir(t)
	fakeSocket(t, dir, ".socket.sock",
		`[{"id":3,"name":"3","monitor":"DP-1","windows":2},{"id":1,"name":"1","monitor":"DP-1","windows":1}]`)

	c := &Client{dir: dir}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ws, err := c.Workspaces(ctx)
	if err != nil {
		t.Fatalf("Workspaces: %v", err)
	}
	if len(ws) != 2 {
		t.Fatalf("len = %d, want 2", len(ws))
	}
	// Sorted by id regardless of wire order.
	if ws[0].ID != 1 || ws[1].ID != 3 {
		t.Errorf("order = %d, %d; want 1, 3", ws[0].ID, ws[1].ID)
	}
	if ws[1].Windows != 2 {
		t.Errorf("windows = %d, want 2", ws[1].Windows)
	}
}

func TestClient_ActiveWindowInvalid(t *testing.T) {
	dir := shortTempDir(t)
	fakeSocket(t, dir, ".socket.sock", "Invalid")

	c := &Client{dir: dir}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, ok, err := c.ActiveWindow(ctx)
	if err != nil {
		t.Fatalf("ActiveWindow: %v", err)
	}
	if ok {
		t.Error("expected ok=false for Invalid reply")
	}
}

func TestClient_ActiveWindow(t *testing.T) {
	dir := shortTempDir(t)
	fakeSocket(t, dir, ".socket.sock",
		`{"class":"kitty","title":"~/src","address":"0xdeadbeef"}`)

	c := &Client{dir: dir}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	w, ok, err := c.ActiveWindow(ctx)
	if err != nil {
		t.Fatalf("ActiveWindow: %v", err)
	}
	if !ok || w.Class != "kitty" || w.Title != "~/src" {
		t.Errorf("window = %+v, ok = %v", w, ok)
	}
}

// --- subscription ---

func TestSubscribe_ReleasesConnectionOnDrop(t *testing.T) {
	dir := shortTempDir(t)
	ln, err := net.Listen("unix", filepath.Join(dir, ".socket2.sock"))
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })
	// Serve one event line per connection, then hang up, like a
	// compositor restarting under the bar.
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Write([]byte("workspace>>2\n"))
			conn.Close()
		}
	}()

	c := &Client{dir: dir}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	before := openFDs(t)
	const drops = 50
	for i := 0; i < drops; i++ {
		if err := c.Subscribe(ctx, func(Event) {}); err == nil {
			t.Fatal("Subscribe should report the dropped stream")
		}
	}
	after := openFDs(t)
	// Allow a little slack for runtime-internal descriptors; every dropped
	// subscription keeping its socket open would show up as ~50 extras.
	if after > before+5 {
		t.Errorf("open fds grew from %d to %d across %d dropped subscriptions", before, after, drops)
	}
}

func openFDs(t *testing.T) int {
	t.Helper()
	ents, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skipf("cannot count fds: %v", err)
	}
	return len(ents)
}

// shortTempDir works around the unix socket path length limit that
// t.TempDir can exceed on some systems.
func shortTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("/tmp", "hypr")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}
