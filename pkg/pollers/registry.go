package pollers

import (
	"sort"
	"sync"
	"time"
)

// Status is a point-in-time health record for one source.
type Status struct {
	Name       string
	Healthy    bool
	LastRun    time.Time
	LastError  string
	RunCount   uint64
	ErrorCount uint64
}

// Registry tracks source health. It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	statuses map[string]*Status
}

func NewRegistry() *Registry {
	return &Registry{statuses: make(map[string]*Status)}
}

func (r *Registry) recordRun(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.statuses[name]
	if !ok {
		st = &Status{Name: name}
		r.statuses[name] = st
	}
	st.LastRun = time.Now()
	st.RunCount++
	if err != nil {
		st.Healthy = false
		st.LastError = err.Error()
		st.ErrorCount++
	} else {
		st.Healthy = true
		st.LastError = ""
	}
}

// Status returns the record for one source.
func (r *Registry) Status(name string) (Status, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.statuses[name]
	if !ok {
		return Status{}, false
	}
	return *st, true
}

// Statuses returns a snapshot of every source, sorted by name.
func (r *Registry) Statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Status, 0, len(r.statuses))
	for _, st := range r.statuses {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
