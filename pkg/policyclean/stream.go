package policyclean

import (
	"context"
	"io"
)

// ChunkSource yields successive row chunks as frames, returning io.EOF when
// the input is exhausted.
type ChunkSource interface {
	Next() (*Frame, error)
}

// ChunkSink receives cleaned chunks. Close is called exactly once, after the
// last chunk or on the first error.
type ChunkSink interface {
	Write(*Frame) error
	Close() error
}

// RunStream drains src chunk by chunk through the pipeline into sink. The
// result matches a batch run only when every step is row-local; anything
// computed over the whole dataset has to be fixed before the pipeline is
// assembled.
func RunStream(ctx context.Context, p *Pipeline, src ChunkSource, sink ChunkSink) error {
	defer func() { _ = sink.Close() }()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		out, err := p.Run(ctx, f)
		if err != nil {
			return err
		}
		if err := sink.Write(out); err != nil {
			return err
		}
	}
}
