package value

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/BaSui01/seqflow/seq"
)

// LineSource reads newline-delimited values from r, one value per line,
// skipping blank lines. It implements seq.Source[Value], so it plugs
// straight into a Multiplexer for fan-out over a record stream.
type LineSource struct {
	sc  *bufio.Scanner
	cur Value
}

var _ seq.Source[Value] = (*LineSource)(nil)

// NewLineSource returns a LineSource over r. Lines are limited to maxLine
// bytes; pass 0 for the bufio default.
func NewLineSource(r io.Reader, maxLine int) *LineSource {
	sc := bufio.NewScanner(r)
	if maxLine > 0 {
		sc.Buffer(make([]byte, 0, min(maxLine, 64*1024)), maxLine)
	}
	return &LineSource{sc: sc}
}

// Next advances to the next non-blank line and parses it.
func (s *LineSource) Next(ctx context.Context) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if !s.sc.Scan() {
			return false, s.sc.Err()
		}
		line := bytes.TrimSpace(s.sc.Bytes())
		if len(line) == 0 {
			continue
		}
		v, err := Parse(line)
		if err != nil {
			return false, err
		}
		s.cur = v
		return true, nil
	}
}

// Current returns the value parsed by the last successful Next.
func (s *LineSource) Current() Value { return s.cur }

// Close releases the source. The caller owns the underlying reader.
func (s *LineSource) Close(ctx context.Context) error { return nil }
