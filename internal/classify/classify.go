// Package classify maps typed failures onto the closed set of user-facing
// error categories. Classification is a pure function: actions are inert
// data dispatched back through the orchestrator, never executed here.
package classify

import "github.com/mohammad-safakhou/smartsum/internal/fault"

// Category is the closed set of user-facing error categories.
type Category string

const (
	Validation      Category = "VALIDATION"
	Auth            Category = "AUTH"
	NetworkTimeout  Category = "NETWORK_TIMEOUT"
	ServiceRejected Category = "SERVICE_REJECTED"
	ClientSystem    Category = "CLIENT_SYSTEM"
	Unknown         Category = "UNKNOWN"
)

// Command names a remedial action the orchestrator knows how to dispatch.
type Command string

const (
	CommandRetry               Command = "retry"
	CommandGoToLogin           Command = "go_to_login"
	CommandSwitchToText        Command = "switch_to_text"
	CommandUseSampleText       Command = "use_sample_text"
	CommandShortenContent      Command = "shorten_content"
	CommandTryDifferentContent Command = "try_different_content"
)

// Action is a labelled remedial command. Inert data only.
type Action struct {
	Label   string
	Command Command
}

// Error is the single error shape surfaced to the user. Exactly one is
// visible at a time; it lives until dismissed or superseded.
type Error struct {
	Title    string
	Message  string
	Category Category
	Actions  []Action
}

// fixed title per category; the message comes from the failure.
var titles = map[Category]string{
	Validation:      "Check your input",
	Auth:            "Session expired",
	NetworkTimeout:  "Request timed out",
	ServiceRejected: "Request rejected",
	ClientSystem:    "Problem on this device",
	Unknown:         "Something went wrong",
}

// Classify resolves a failure to exactly one category with a fixed,
// stage-appropriate action set. urlMode selects the validation remedies
// that only make sense when the input is an address.
func Classify(f *fault.Failure, urlMode bool) Error {
	cat, actions := resolve(f, urlMode)
	return Error{
		Title:    titles[cat],
		Message:  f.Message,
		Category: cat,
		Actions:  actions,
	}
}

func resolve(f *fault.Failure, urlMode bool) (Category, []Action) {
	switch f.Kind {
	case fault.KindValidation:
		if urlMode {
			return Validation, []Action{
				{Label: "Switch to text input", Command: CommandSwitchToText},
				{Label: "Try sample text", Command: CommandUseSampleText},
			}
		}
		return Validation, []Action{
			{Label: "Try sample text", Command: CommandUseSampleText},
		}
	case fault.KindAuth:
		return Auth, []Action{
			{Label: "Go to login", Command: CommandGoToLogin},
		}
	case fault.KindTimeout:
		if f.Stage == fault.StageSummarize {
			return NetworkTimeout, []Action{
				{Label: "Try again", Command: CommandRetry},
				{Label: "Try shorter content", Command: CommandShortenContent},
			}
		}
		return NetworkTimeout, []Action{
			{Label: "Try again", Command: CommandRetry},
		}
	case fault.KindForbidden, fault.KindBadRequest, fault.KindNotFound,
		fault.KindServiceReject, fault.KindEmptyResult:
		actions := []Action{
			{Label: "Try different content", Command: CommandTryDifferentContent},
		}
		if f.Stage == fault.StageResolve {
			actions = append(actions, Action{Label: "Switch to text input", Command: CommandSwitchToText})
		}
		return ServiceRejected, actions
	case fault.KindClientSystem:
		return ClientSystem, []Action{
			{Label: "Try again", Command: CommandRetry},
		}
	case fault.KindConnectivity:
		return Unknown, []Action{
			{Label: "Try again", Command: CommandRetry},
		}
	default:
		return Unknown, []Action{
			{Label: "Try again", Command: CommandRetry},
		}
	}
}
