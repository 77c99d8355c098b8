package logs

import (
	"context"
	"errors"
	"fmt"
)

// WrapSpan tags err with the span and label of ctx.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	v := ctx.Value(SpanKey)
	if v == nil {
		return err
	}
	if label, ok := ctx.Value(LabelKey).(string); ok && label != "" {
		return errors.Join(err, fmt.Errorf("span: %s (%s)", v.(Span), label))
	}
	return errors.Join(err, fmt.Errorf("span: %s", v.(Span)))
}
