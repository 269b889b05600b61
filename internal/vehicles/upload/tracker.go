package upload

import "sync"

// GateMessage is returned when a vehicle submission arrives while the
// session's image upload has not completed.
const GateMessage = "Please wait for the image upload to complete."

const (
	StateUploading = "UPLOADING"
	StateFailed    = "FAILED"
	StateDone      = "DONE"
)

// Status is one session's image upload as the progress endpoint reports it.
type Status struct {
	Filename string `json:"filename"`
	Total    int64  `json:"total"`
	Sent     int64  `json:"sent"`
	State    string `json:"state"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Tracker holds at most one upload per user. A session stays blocked from
// submitting vehicle forms while its upload is running or has failed; only a
// successful (re)upload unblocks it.
type Tracker struct {
	mu      sync.RWMutex
	uploads map[string]*Status
}

func NewTracker() *Tracker {
	return &Tracker{uploads: make(map[string]*Status)}
}

// Begin registers a fresh upload, replacing any previous one (including a
// failed one being retried).
func (t *Tracker) Begin(userID, filename string, total int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.uploads[userID] = &Status{
		Filename: filename,
		Total:    total,
		State:    StateUploading,
	}
}

func (t *Tracker) Progress(userID string, n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.uploads[userID]; ok && st.State == StateUploading {
		st.Sent += n
	}
}

func (t *Tracker) Fail(userID string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.uploads[userID]; ok {
		st.State = StateFailed
		st.Error = err.Error()
	}
}

func (t *Tracker) Done(userID, url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.uploads[userID]; ok {
		st.State = StateDone
		st.Sent = st.Total
		st.URL = url
	}
}

func (t *Tracker) Get(userID string) (Status, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st, ok := t.uploads[userID]
	if !ok {
		return Status{}, false
	}
	return *st, true
}

// Blocked reports whether the user's vehicle submissions must be refused.
func (t *Tracker) Blocked(userID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st, ok := t.uploads[userID]
	if !ok {
		return false
	}
	return st.State == StateUploading || st.State == StateFailed
}
