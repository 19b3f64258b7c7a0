package errs

import "github.com/m-mizutani/goerr/v2"

var (
	// TagFatalEvent marks a malformed trigger event (missing action, actor
	// or subreddit). Processing of that event aborts; nothing is sent.
	TagFatalEvent = goerr.NewTag("fatal_event")

	// TagConfig marks a configuration error: no roster ever cached, or all
	// reporting channels disabled. Aborts processing, never silently retried.
	TagConfig = goerr.NewTag("config")

	// TagProvider marks a degraded external lookup (empty roster fetch,
	// ban-status failure, note-write failure). Logged; processing continues
	// on best-available data.
	TagProvider = goerr.NewTag("provider")

	// TagDelivery marks a per-channel send failure. Logged per channel,
	// never escalated, no retry.
	TagDelivery = goerr.NewTag("delivery")

	// HTTP surface errors
	TagInvalidRequest = goerr.NewTag("invalid_request")
	TagInternal       = goerr.NewTag("internal")
)
