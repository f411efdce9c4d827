package orchestrate

import (
	"context"
	"fmt"

	"github.com/mohammad-safakhou/smartsum/internal/classify"
)

// Outcome is what dispatching a remedial command produced. When Ran is
// false the command only adjusted state or returned advice; nothing was
// submitted.
type Outcome struct {
	Ran    bool
	Result Result
	Err    *classify.Error
	Advice string
}

// Dispatch executes a remedial command from a displayed error. Commands are
// inert data until they arrive here; this is the only place they run.
func (o *Orchestrator) Dispatch(ctx context.Context, cmd classify.Command) (Outcome, error) {
	o.mu.Lock()
	last := o.last
	o.mu.Unlock()

	switch cmd {
	case classify.CommandRetry:
		res, cerr := o.Submit(ctx, last)
		return Outcome{Ran: true, Result: res, Err: cerr}, nil
	case classify.CommandGoToLogin:
		if o.nav != nil {
			o.nav.GoToLogin()
		}
		return Outcome{Advice: "log in and submit again"}, nil
	case classify.CommandSwitchToText:
		o.Dismiss()
		o.mu.Lock()
		o.last = Request{Mode: ModeText, Granularity: last.Granularity}
		o.mu.Unlock()
		return Outcome{Advice: "input mode switched to text, paste the content to summarize"}, nil
	case classify.CommandUseSampleText:
		req := Request{Content: SampleText, Mode: ModeText, Granularity: last.Granularity}
		res, cerr := o.Submit(ctx, req)
		return Outcome{Ran: true, Result: res, Err: cerr}, nil
	case classify.CommandShortenContent:
		return Outcome{Advice: "shorten the content and submit again"}, nil
	case classify.CommandTryDifferentContent:
		return Outcome{Advice: "try submitting different content"}, nil
	default:
		return Outcome{}, fmt.Errorf("unknown command: %s", cmd)
	}
}
