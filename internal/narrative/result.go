package narrative

import "errors"

// Kind identifies a narrative operation. It doubles as the purpose label
// in the LLM audit log.
type Kind string

const (
	KindSeries  Kind = "series-summary"
	KindInsight Kind = "chart-insight"
	KindStory   Kind = "story"
)

// Fallback sentences shown in place of narrative text on failure.
const (
	FallbackSeries = "Unable to analyze data at this moment."
	FallbackStory  = "Could not generate the full story. Please check API key configuration."
)

// Fallback returns the fixed fallback sentence for k.
func Fallback(k Kind) string {
	if k == KindStory {
		return FallbackStory
	}
	return FallbackSeries
}

// Reason explains why a narrative call failed. The zero value means success.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonMissingCredential Reason = "missing-credential"
	ReasonExternalFailure   Reason = "external-failure"
	ReasonEmptyResponse     Reason = "empty-response"
)

var (
	ErrMissingCredential = errors.New("narrative: no credential selected")
	ErrEmptyResponse     = errors.New("narrative: empty response")
)

// Trend classifies an insight's direction for the energy transition.
type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
	TrendNeutral  Trend = "neutral"
)

// Insight is a structured chart insight.
type Insight struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Trend   Trend  `json:"trend"`
}

// Result is the outcome of one narrative call: text on success, or a
// Reason and the underlying error on failure.
type Result struct {
	RequestID string
	Kind      Kind
	Text      string
	Insight   *Insight // set by ChartInsight on success
	Reason    Reason
	Err       error
}

// OK reports whether the call produced text.
func (r Result) OK() bool {
	return r.Reason == ReasonNone
}

// Display returns the text to show: the narrative on success, the
// operation's fallback sentence otherwise.
func (r Result) Display() string {
	if r.OK() {
		return r.Text
	}
	return Fallback(r.Kind)
}
