package recording

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/cfoust/frag/pkg/game/events"
)

const (
	Format  = "frag-recording"
	Version = 1
)

// Header starts every recording.
type Header struct {
	Format   string    `cbor:"1,keyasint"`
	Version  int       `cbor:"2,keyasint"`
	Session  uuid.UUID `cbor:"3,keyasint"`
	Created  time.Time `cbor:"4,keyasint"`
	TickRate uint      `cbor:"5,keyasint"`
}

func NewHeader(tickRate uint) Header {
	return Header{
		Format:   Format,
		Version:  Version,
		Session:  uuid.New(),
		Created:  time.Now(),
		TickRate: tickRate,
	}
}

// Writer appends frames to a recording as a stream of CBOR items.
type Writer struct {
	out     *bufio.Writer
	encoder *cbor.Encoder
	header  Header
	frames  int
	// SkipEmpty drops frames with no events.
	SkipEmpty bool
}

func NewWriter(w io.Writer, header Header) (*Writer, error) {
	out := bufio.NewWriter(w)
	writer := &Writer{
		out:     out,
		encoder: cbor.NewEncoder(out),
		header:  header,
	}

	if err := writer.encoder.Encode(header); err != nil {
		return nil, fmt.Errorf("could not write header: %w", err)
	}
	return writer, nil
}

func (w *Writer) Header() Header {
	return w.header
}

// Frames returns the number of frames written.
func (w *Writer) Frames() int {
	return w.frames
}

func (w *Writer) Write(frame events.Frame) error {
	if w.SkipEmpty && frame.Empty() {
		return nil
	}

	if err := w.encoder.Encode(frame); err != nil {
		return fmt.Errorf("could not write frame %d: %w", frame.Tick, err)
	}
	w.frames++
	return nil
}

// Flush writes any buffered frames to the underlying writer.
func (w *Writer) Flush() error {
	return w.out.Flush()
}

// Reader reads back a recording written by Writer.
type Reader struct {
	decoder *cbor.Decoder
	header  Header
}

var ErrFormat = errors.New("not a frag recording")

func NewReader(r io.Reader) (*Reader, error) {
	decoder := cbor.NewDecoder(bufio.NewReader(r))

	var header Header
	if err := decoder.Decode(&header); err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}

	if header.Format != Format {
		return nil, ErrFormat
	}
	if header.Version > Version {
		return nil, fmt.Errorf("unsupported recording version %d", header.Version)
	}

	return &Reader{
		decoder: decoder,
		header:  header,
	}, nil
}

func (r *Reader) Header() Header {
	return r.header
}

// Next returns the next frame, or io.EOF after the last one.
func (r *Reader) Next() (events.Frame, error) {
	var frame events.Frame
	err := r.decoder.Decode(&frame)
	if errors.Is(err, io.EOF) {
		return frame, io.EOF
	}
	if err != nil {
		return frame, fmt.Errorf("could not read frame: %w", err)
	}
	return frame, nil
}

// ReadAll reads every frame in a recording.
func ReadAll(r io.Reader) (Header, []events.Frame, error) {
	reader, err := NewReader(r)
	if err != nil {
		return Header{}, nil, err
	}

	var frames []events.Frame
	for {
		frame, err := reader.Next()
		if err == io.EOF {
			return reader.Header(), frames, nil
		}
		if err != nil {
			return reader.Header(), frames, err
		}
		frames = append(frames, frame)
	}
}
