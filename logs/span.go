package logs

type Span string

type spanKey struct{}

var SpanKey = spanKey{}

type labelKey struct{}

var LabelKey = labelKey{}
