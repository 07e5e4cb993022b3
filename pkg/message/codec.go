package message

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Native messaging frames every JSON message with a 32-bit length in native
// byte order.
const (
	// MaxOutbound is the largest message a host may send to the browser.
	MaxOutbound = 1 << 20
	// MaxInbound is the largest message the browser sends to a host.
	MaxInbound = 64 << 20
)

// Encoder writes length-prefixed JSON frames. It is safe for concurrent use.
type Encoder struct {
	mu  sync.Mutex
	w   io.Writer
	max int
}

// NewEncoder returns an Encoder limited to MaxOutbound.
func NewEncoder(w io.Writer) *Encoder {
	return NewEncoderLimit(w, MaxOutbound)
}

// NewEncoderLimit returns an Encoder rejecting frames larger than max bytes.
func NewEncoderLimit(w io.Writer, max int) *Encoder {
	return &Encoder{w: w, max: max}
}

// Encode writes v as one frame.
func (e *Encoder) Encode(v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("message: encode: %w", err)
	}
	if len(body) > e.max {
		return fmt.Errorf("message: frame of %d bytes exceeds %d", len(body), e.max)
	}
	var header [4]byte
	binary.NativeEndian.PutUint32(header[:], uint32(len(body)))

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.w.Write(header[:]); err != nil {
		return fmt.Errorf("message: write header: %w", err)
	}
	if _, err := e.w.Write(body); err != nil {
		return fmt.Errorf("message: write body: %w", err)
	}
	return nil
}

// Decoder reads length-prefixed JSON frames.
type Decoder struct {
	r   io.Reader
	max int
}

// NewDecoder returns a Decoder limited to MaxInbound.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, max: MaxInbound}
}

// Decode reads the next frame into v. It returns io.EOF when the stream ends
// cleanly between frames.
func (d *Decoder) Decode(v any) error {
	var header [4]byte
	if _, err := io.ReadFull(d.r, header[:]); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("message: read header: %w", err)
	}
	size := binary.NativeEndian.Uint32(header[:])
	if int64(size) > int64(d.max) {
		return fmt.Errorf("message: frame of %d bytes exceeds %d", size, d.max)
	}
	body := make([]byte, size)
	if _, err := io.ReadFull(d.r, body); err != nil {
		return fmt.Errorf("message: read body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("message: decode: %w", err)
	}
	return nil
}
