package pipeline

import (
	"context"
	"iter"
)

// Stream is a lazy sequence bound to a context when it is pulled. Each stage
// asks its source for one value at a time, so nothing past a failed value is
// ever produced.
type Stream[T any] struct {
	seq func(ctx context.Context) iter.Seq2[T, error]
}

// FromSlice streams items in order.
func FromSlice[T any](items []T) *Stream[T] {
	return &Stream[T]{seq: func(ctx context.Context) iter.Seq2[T, error] {
		return func(yield func(T, error) bool) {
			for _, item := range items {
				if err := ctx.Err(); err != nil {
					var zero T
					yield(zero, err)
					return
				}
				if !yield(item, nil) {
					return
				}
			}
		}
	}}
}

// Map applies fn to each value. An error from fn or from upstream ends the
// stream after it is yielded.
func Map[I, O any](s *Stream[I], fn func(context.Context, I) (O, error)) *Stream[O] {
	return &Stream[O]{seq: func(ctx context.Context) iter.Seq2[O, error] {
		return func(yield func(O, error) bool) {
			for in, err := range s.seq(ctx) {
				var out O
				if err == nil {
					out, err = fn(ctx, in)
				}
				if !yield(out, err) || err != nil {
					return
				}
			}
		}
	}}
}

// Collect pulls the stream to the end. On error the values gathered so far
// are returned alongside it.
func Collect[T any](ctx context.Context, s *Stream[T]) ([]T, error) {
	var out []T
	for v, err := range s.seq(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}
