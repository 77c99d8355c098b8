package networks

import (
	"context"

	"github.com/reusee/intcode/intcode"
)

// Pipe forwards every output of src to dst, then closes dst.
// If src stops without halting, the error is returned.
func Pipe(ctx context.Context, src *intcode.Source, dst *intcode.Sink) error {
	defer dst.Close()
	for value, err := range src.All(ctx) {
		if err != nil {
			return err
		}
		if err := dst.Send(value); err != nil {
			// downstream is gone, drop the rest
			src.Close()
			return nil
		}
	}
	return nil
}
