package pollers

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/clammy/pkg/engine"
	"gitlab.com/tinyland/lab/clammy/pkg/hypr"
)

const hyprQueryTimeout = 2 * time.Second

// Hyprland streams workspace and window focus changes from the
// compositor event socket. Workspace events trigger a fresh query of
// the full workspace list so created and destroyed workspaces stay in
// sync; window titles come straight off the event stream.
type Hyprland struct {
	workspaces  bool
	windowTitle bool
}

func NewHyprland(workspaces, windowTitle bool) *Hyprland {
	return &Hyprland{workspaces: workspaces, windowTitle: windowTitle}
}

func (h *Hyprland) Name() string { return "hyprland" }

func (h *Hyprland) Run(ctx context.Context, enqueue func(engine.Event)) error {
	client, err := hypr.NewClient()
	if err != nil {
		return err
	}

	if h.workspaces {
		if err := h.publishWorkspaces(ctx, client, enqueue); err != nil {
			return err
		}
	}
	if h.windowTitle {
		h.publishActiveWindow(ctx, client, enqueue)
	}

	return client.Subscribe(ctx, func(ev hypr.Event) {
		switch ev.Kind {
		case hypr.ActiveWindow:
			if !h.windowTitle {
				return
			}
			enqueue(windowTitleEvent(ev.Class, ev.Title, ev.HasWindow))
		case hypr.WorkspaceChanged, hypr.WorkspaceCreated, hypr.WorkspaceDestroyed:
			if !h.workspaces {
				return
			}
			if err := h.publishWorkspaces(ctx, client, enqueue); err != nil {
				enqueue(engine.DiagnosticEvent{Source: h.Name(), Err: err})
			}
		}
	})
}

func (h *Hyprland) publishWorkspaces(ctx context.Context, client *hypr.Client, enqueue func(engine.Event)) error {
	qctx, cancel := context.WithTimeout(ctx, hyprQueryTimeout)
	defer cancel()

	list, err := client.Workspaces(qctx)
	if err != nil {
		return err
	}
	active, err := client.ActiveWorkspace(qctx)
	if err != nil {
		return err
	}
	ids := make([]int, len(list))
	for i, ws := range list {
		ids[i] = ws.ID
	}
	enqueue(engine.WorkspaceEvent{ActiveID: active.ID, IDs: ids})
	return nil
}

func (h *Hyprland) publishActiveWindow(ctx context.Context, client *hypr.Client, enqueue func(engine.Event)) {
	qctx, cancel := context.WithTimeout(ctx, hyprQueryTimeout)
	defer cancel()

	w, ok, err := client.ActiveWindow(qctx)
	if err != nil {
		enqueue(engine.DiagnosticEvent{Source: h.Name(), Err: err})
		return
	}
	enqueue(windowTitleEvent(w.Class, w.Title, ok))
}

func windowTitleEvent(class, title string, hasWindow bool) engine.WindowTitleEvent {
	if !hasWindow {
		return engine.WindowTitleEvent{}
	}
	text := title
	if class != "" {
		text = fmt.Sprintf("%s - %s", class, title)
	}
	return engine.WindowTitleEvent{Title: text, HasWindow: true}
}
