// Package editor provides the autosave scheduler used by editor frontends.
// It mirrors the two-timer protocol of the web editor: a debounced save after
// a pause in typing, and an unconditional heartbeat save while the session is
// open.
package editor

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"inkwell/pkg/helpers"
)

// Draft is the editable state of a post inside an editor session.
type Draft struct {
	Title    string
	Content  string
	Tags     []string
	ImageURL string
}

// SaveFunc persists a draft. postID is empty for a brand-new post; the
// returned id identifies the created or updated post and becomes the target
// of every later save.
type SaveFunc func(ctx context.Context, postID string, d Draft) (string, error)

// Autosaver schedules draft saves: at most one save per debounce interval of
// inactivity after an edit, and at least one attempt per heartbeat interval.
// Saves are silently skipped while the draft is not saveable (empty title, or
// content empty once markup is stripped) or the session is not authorized to
// write the target. Both timers are owned by Run and stop when its context is
// cancelled, so no save can fire after teardown.
type Autosaver struct {
	save       SaveFunc
	authorized func() bool
	logger     *logrus.Logger
	debounce   time.Duration
	heartbeat  time.Duration

	mu     sync.Mutex
	draft  Draft
	postID string

	edits chan struct{}
}

type Option func(*Autosaver)

// WithIntervals overrides the debounce and heartbeat durations (tests).
func WithIntervals(debounce, heartbeat time.Duration) Option {
	return func(a *Autosaver) {
		a.debounce = debounce
		a.heartbeat = heartbeat
	}
}

// WithAuthorized installs an ownership predicate; saves are skipped while it
// reports false.
func WithAuthorized(f func() bool) Option {
	return func(a *Autosaver) { a.authorized = f }
}

func WithLogger(l *logrus.Logger) Option {
	return func(a *Autosaver) { a.logger = l }
}

// WithPostID continues an existing editing session against a known post.
func WithPostID(id string) Option {
	return func(a *Autosaver) { a.postID = id }
}

func NewAutosaver(save SaveFunc, opts ...Option) *Autosaver {
	a := &Autosaver{
		save:      save,
		debounce:  5 * time.Second,
		heartbeat: 30 * time.Second,
		edits:     make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// SetDraft replaces the draft state and restarts the debounce window.
func (a *Autosaver) SetDraft(d Draft) {
	a.mu.Lock()
	a.draft = d
	a.mu.Unlock()

	select {
	case a.edits <- struct{}{}:
	default: // a reset is already pending
	}
}

// PostID returns the identity allocated by the first successful save, or the
// id the session was opened with.
func (a *Autosaver) PostID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.postID
}

// Run drives both timers until ctx is cancelled. The debounce timer is armed
// only by edits; the heartbeat ticks for the whole session.
func (a *Autosaver) Run(ctx context.Context) {
	debounce := time.NewTimer(a.debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	heartbeat := time.NewTicker(a.heartbeat)
	defer debounce.Stop()
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.edits:
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(a.debounce)
		case <-debounce.C:
			a.trySave(ctx)
		case <-heartbeat.C:
			a.trySave(ctx)
		}
	}
}

// trySave snapshots the draft and saves it when saveable. Skips are silent;
// save errors are logged and the session keeps going, matching the editor's
// fire-and-forget behavior.
func (a *Autosaver) trySave(ctx context.Context) {
	if a.authorized != nil && !a.authorized() {
		return
	}

	a.mu.Lock()
	d := a.draft
	id := a.postID
	a.mu.Unlock()

	// Same emptiness rules the save endpoint applies, so a skipped draft is
	// exactly one the server would reject.
	if strings.TrimSpace(d.Title) == "" || helpers.StripMarkup(d.Content) == "" {
		return
	}

	newID, err := a.save(ctx, id, d)
	if err != nil {
		if a.logger != nil {
			a.logger.WithError(err).WithField("post_id", id).Warn("autosave failed")
		}
		return
	}

	a.mu.Lock()
	if a.postID == "" {
		a.postID = newID
	}
	a.mu.Unlock()
}
