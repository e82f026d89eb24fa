package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// reply is what an adapter pulls out of its SDK response before the
// checks every backend shares.
type reply struct {
	text      string
	model     string
	truncated bool
	usage     Usage
}

// finish turns r into a Response. A structured reply cut off at the token
// limit is an error, and any structured reply must match req.Schema.
func (r reply) finish(req Request) (*Response, error) {
	content := json.RawMessage(r.text)
	if req.Schema != nil {
		if r.truncated {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	stop := "end"
	if r.truncated {
		stop = "max_tokens"
	}
	return &Response{Content: content, Usage: r.usage, Model: r.model, StopReason: stop}, nil
}

// byStatus classifies a failed SDK call from the HTTP status it carried.
// status is 0 when the SDK error had none, i.e. the request never got an
// answer.
func byStatus(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status >= 500:
		return &ErrProviderUnavailable{Err: err}
	case status > 0:
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
