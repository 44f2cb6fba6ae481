// Package tracefile streams simulation trace lines to a file,
// optionally compressed with snappy or lz4.
package tracefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the stream format of a trace file.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionSnappy
	CompressionLZ4
)

// ErrUnknownCompression is returned by [ParseCompression].
var ErrUnknownCompression = errors.New("unknown trace compression")

// ParseCompression accepts "none" (or ""), "snappy" and "lz4".
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "snappy":
		return CompressionSnappy, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q (want none, snappy or lz4)", ErrUnknownCompression, name)
	}
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionSnappy:
		return "snappy"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Compression) UnmarshalText(text []byte) error {
	compression, err := ParseCompression(string(text))
	if err != nil {
		return err
	}
	*c = compression
	return nil
}

// Writer writes newline terminated trace lines.
// It is not safe for concurrent use.
type Writer struct {
	lines  *bufio.Writer
	stream io.WriteCloser // nil when uncompressed
	file   io.Closer      // nil when the destination is not owned
	count  int
}

// Create truncates or creates the file at path
// and returns a [Writer] that owns it.
func Create(path string, compression Compression) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace file: %w", err)
	}
	w, err := NewWriter(file, compression)
	if err != nil {
		return nil, errors.Join(err, file.Close())
	}
	w.file = file
	return w, nil
}

// NewWriter returns a [Writer] over dst.
// Closing the Writer flushes but does not close dst.
func NewWriter(dst io.Writer, compression Compression) (*Writer, error) {
	var stream io.WriteCloser
	switch compression {
	case CompressionNone:
	case CompressionSnappy:
		stream = snappy.NewBufferedWriter(dst)
	case CompressionLZ4:
		stream = lz4.NewWriter(dst)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, compression)
	}
	w := &Writer{stream: stream}
	if stream != nil {
		w.lines = bufio.NewWriter(stream)
	} else {
		w.lines = bufio.NewWriter(dst)
	}
	return w, nil
}

// WriteLine appends line followed by a newline.
func (w *Writer) WriteLine(line string) error {
	if _, err := w.lines.WriteString(line); err != nil {
		return fmt.Errorf("write trace line: %w", err)
	}
	if err := w.lines.WriteByte('\n'); err != nil {
		return fmt.Errorf("write trace line: %w", err)
	}
	w.count++
	return nil
}

// Lines returns the number of lines written so far.
func (w *Writer) Lines() int { return w.count }

// Close flushes buffered lines, terminates the compressed
// stream, and closes the file if the Writer owns one.
func (w *Writer) Close() error {
	var errs []error
	if err := w.lines.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush trace: %w", err))
	}
	if w.stream != nil {
		if err := w.stream.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close compressed trace stream: %w", err))
		}
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close trace file: %w", err))
		}
	}
	return errors.Join(errs...)
}

// NewReader returns a reader that decompresses src.
func NewReader(src io.Reader, compression Compression) (io.Reader, error) {
	switch compression {
	case CompressionNone:
		return src, nil
	case CompressionSnappy:
		return snappy.NewReader(src), nil
	case CompressionLZ4:
		return lz4.NewReader(src), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, compression)
	}
}

// ReadLines decompresses src and returns its lines.
func ReadLines(src io.Reader, compression Compression) ([]string, error) {
	reader, err := NewReader(src, compression)
	if err != nil {
		return nil, err
	}
	var (
		lines   []string
		scanner = bufio.NewScanner(reader)
	)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return lines, nil
}
