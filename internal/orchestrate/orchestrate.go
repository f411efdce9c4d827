// Package orchestrate owns the submission lifecycle: validate, resolve
// remote content when the input is an address, summarize, then commit the
// result to history. Exactly one traversal is in flight at a time; a new
// submission cancels the previous one and a superseded traversal's outcome
// is discarded, never committed.
package orchestrate

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/mohammad-safakhou/smartsum/internal/classify"
	"github.com/mohammad-safakhou/smartsum/internal/fault"
	"github.com/mohammad-safakhou/smartsum/internal/history"
	"github.com/mohammad-safakhou/smartsum/internal/resolver"
	"github.com/mohammad-safakhou/smartsum/internal/summarize"
)

// InputMode selects how the submitted content is interpreted.
type InputMode string

const (
	ModeText InputMode = "text"
	ModeURL  InputMode = "url"
)

// Request is one user submission. Immutable once submitted.
type Request struct {
	Content     string
	Mode        InputMode
	Granularity summarize.Granularity
}

// Result is a successful outcome with its committed history entry.
type Result struct {
	SummaryText string
	Entry       history.Entry
}

// State is the orchestration state machine. Failed and Succeeded are
// transient display states; the next submission or an explicit reset
// returns to Idle.
type State string

const (
	StateIdle             State = "idle"
	StateValidating       State = "validating"
	StateResolvingContent State = "resolving_content"
	StateSummarizing      State = "summarizing"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
)

// Snapshot is the externally observable view of the machine.
type Snapshot struct {
	State           State
	Loading         bool
	FetchingContent bool
	Summary         string
	Err             *classify.Error
}

// Summarizer produces a summary for already-resolved content.
type Summarizer interface {
	Summarize(ctx context.Context, content string, g summarize.Granularity) (string, error)
}

// Clipboard is the local copy collaborator; a write failure is a
// client-system error, never a network one.
type Clipboard interface {
	Write(text string) error
}

// Navigator is signalled when a remedial action requires the login surface.
type Navigator interface {
	GoToLogin()
}

// SampleText backs the "try sample text" remedial action.
const SampleText = "The James Webb Space Telescope has captured its deepest infrared image of the " +
	"early universe to date, revealing thousands of galaxies in a patch of sky roughly the size of " +
	"a grain of sand held at arm's length. Astronomers say the observations will help refine " +
	"estimates of when the first stars formed and how quickly early galaxies assembled."

type Orchestrator struct {
	resolver resolver.Resolver
	invoker  Summarizer
	hist     *history.Cache
	clip     Clipboard
	nav      Navigator
	logger   *log.Logger

	mu      sync.Mutex
	state   State
	gen     int
	cancel  context.CancelFunc
	last    Request
	summary string
	entry   history.Entry
	errView *classify.Error
}

func New(res resolver.Resolver, inv Summarizer, hist *history.Cache, clip Clipboard, nav Navigator, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		resolver: res,
		invoker:  inv,
		hist:     hist,
		clip:     clip,
		nav:      nav,
		logger:   logger,
		state:    StateIdle,
	}
}

// Submit drives one full traversal. The returned classify.Error is non-nil
// exactly when the traversal reached Failed; a traversal superseded by a
// newer submission returns zero values.
func (o *Orchestrator) Submit(parent context.Context, req Request) (Result, *classify.Error) {
	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	o.gen++
	gen := o.gen
	o.cancel = cancel
	o.last = req
	o.state = StateValidating
	o.summary = ""
	o.errView = nil
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		if gen == o.gen {
			o.cancel = nil
		}
		o.mu.Unlock()
		cancel()
	}()

	content, err := o.validate(req)
	if err != nil {
		return o.fail(gen, req, err)
	}

	if req.Mode == ModeURL {
		if !o.transition(gen, StateResolvingContent) {
			return Result{}, nil
		}
		content, err = o.resolver.Resolve(ctx, req.Content)
		if err != nil {
			return o.fail(gen, req, err)
		}
	}

	if !o.transition(gen, StateSummarizing) {
		return Result{}, nil
	}
	summary, err := o.invoker.Summarize(ctx, content, req.Granularity)
	if err != nil {
		return o.fail(gen, req, err)
	}

	return o.succeed(gen, req, summary)
}

// validate runs the local checks; nothing here touches the network.
func (o *Orchestrator) validate(req Request) (string, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		if req.Mode == ModeURL {
			return "", fault.New(fault.StageValidate, fault.KindValidation, "please enter a URL to summarize")
		}
		return "", fault.New(fault.StageValidate, fault.KindValidation, "please enter some text to summarize")
	}
	if req.Mode == ModeURL {
		if err := resolver.ValidateURL(content); err != nil {
			return "", err
		}
	}
	return content, nil
}

// transition advances the machine unless this traversal has been superseded.
func (o *Orchestrator) transition(gen int, next State) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return false
	}
	o.state = next
	return true
}

func (o *Orchestrator) fail(gen int, req Request, err error) (Result, *classify.Error) {
	if errors.Is(err, context.Canceled) {
		// superseded mid-flight; the newer traversal owns the display state
		return Result{}, nil
	}
	f := fault.As(fault.StageValidate, err)
	ce := classify.Classify(f, req.Mode == ModeURL)

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return Result{}, nil
	}
	o.state = StateFailed
	o.errView = &ce
	return Result{}, &ce
}

func (o *Orchestrator) succeed(gen int, req Request, summary string) (Result, *classify.Error) {
	entry := history.NewEntry(req.Content, string(req.Mode), string(req.Granularity), summary)

	o.mu.Lock()
	if gen != o.gen {
		o.mu.Unlock()
		return Result{}, nil
	}
	o.state = StateSucceeded
	o.summary = summary
	o.entry = entry
	o.errView = nil
	o.mu.Unlock()

	// a failed persist does not demote the success; the summary is still shown
	if err := o.hist.Insert(entry); err != nil {
		o.logger.Printf("[warn] history persist failed: %v", err)
	}
	return Result{SummaryText: summary, Entry: entry}, nil
}

// Snapshot reports the observable machine state. The loading indicator
// covers validation through summarization; the fetching sub-indicator is
// active only while remote content is being resolved.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	loading := o.state == StateValidating || o.state == StateResolvingContent || o.state == StateSummarizing
	return Snapshot{
		State:           o.state,
		Loading:         loading,
		FetchingContent: o.state == StateResolvingContent,
		Summary:         o.summary,
		Err:             o.errView,
	}
}

// Dismiss clears the transient display state and returns to Idle.
func (o *Orchestrator) Dismiss() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateFailed || o.state == StateSucceeded {
		o.state = StateIdle
		o.errView = nil
	}
}

// Restore re-populates the active view from a history entry without
// touching cache order.
func (o *Orchestrator) Restore(id string) (history.Entry, error) {
	entry, err := o.hist.Get(id)
	if err != nil {
		return history.Entry{}, err
	}
	o.mu.Lock()
	o.state = StateSucceeded
	o.summary = entry.SummaryText
	o.entry = entry
	o.errView = nil
	o.last = Request{
		Content:     entry.OriginalInput,
		Mode:        InputMode(entry.InputMode),
		Granularity: summarize.Granularity(entry.Granularity),
	}
	o.mu.Unlock()
	return entry, nil
}

// CopySummary writes the current summary to the clipboard. Failures are
// client-system errors and never mix with network classifications.
func (o *Orchestrator) CopySummary() *classify.Error {
	o.mu.Lock()
	summary := o.summary
	o.mu.Unlock()
	if summary == "" {
		return nil
	}
	if err := o.clip.Write(summary); err != nil {
		f := fault.Wrap(fault.StageClient, fault.KindClientSystem, "failed to copy to clipboard", err)
		ce := classify.Classify(f, false)
		return &ce
	}
	return nil
}
