package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/google/uuid"

	"tableflip.dev/notas/pkg/message"
	"tableflip.dev/notas/pkg/note"
	"tableflip.dev/notas/pkg/store"
)

// ErrClosed is returned by Client calls once the relay stream has ended.
var ErrClosed = errors.New("relay: connection closed")

// Client is a store.Persistence that forwards to a relay over a native
// messaging stream. Responses are matched to requests by id, so calls may
// overlap.
type Client struct {
	enc    *message.Encoder
	closer io.Closer

	mu      sync.Mutex
	waiting map[string]chan message.Response
	err     error
	done    chan struct{}
}

var _ store.Persistence = (*Client)(nil)

// NewClient starts reading responses from in. Requests are written to out.
func NewClient(in io.Reader, out io.WriteCloser) *Client {
	c := &Client{
		enc:     message.NewEncoderLimit(out, message.MaxInbound),
		closer:  out,
		waiting: make(map[string]chan message.Response),
		done:    make(chan struct{}),
	}
	go c.readLoop(message.NewDecoder(in))
	return c
}

// Spawn runs name with args as a relay child process and connects a Client
// to its stdio. Close the client to stop the child.
func Spawn(ctx context.Context, name string, args ...string) (*Client, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("relay: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("relay: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("relay: start %s: %w", name, err)
	}
	c := NewClient(stdout, stdin)
	c.closer = closerFunc(func() error {
		_ = stdin.Close()
		return cmd.Wait()
	})
	return c, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// GetNotes implements store.Persistence.
func (c *Client) GetNotes(ctx context.Context) ([]*note.Note, error) {
	resp, err := c.call(ctx, message.Request{Action: message.ActionGetNotes})
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	if resp.Notes == nil {
		return []*note.Note{}, nil
	}
	return resp.Notes, nil
}

// SaveNotes implements store.Persistence.
func (c *Client) SaveNotes(ctx context.Context, notes []*note.Note) error {
	resp, err := c.call(ctx, message.Request{Action: message.ActionSaveNotes, Data: notes})
	if err != nil {
		return err
	}
	if !resp.Success {
		if resp.Error != "" {
			return errors.New(resp.Error)
		}
		return errors.New("relay: save not acknowledged")
	}
	return nil
}

// Close ends the request stream.
func (c *Client) Close() error {
	return c.closer.Close()
}

func (c *Client) call(ctx context.Context, req message.Request) (message.Response, error) {
	req.ID = uuid.NewString()
	ch := make(chan message.Response, 1)

	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return message.Response{}, err
	}
	c.waiting[req.ID] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.waiting, req.ID)
		c.mu.Unlock()
	}()

	if err := c.enc.Encode(req); err != nil {
		return message.Response{}, err
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-c.done:
		return message.Response{}, c.closedErr()
	case <-ctx.Done():
		return message.Response{}, ctx.Err()
	}
}

func (c *Client) readLoop(dec *message.Decoder) {
	var err error
	for {
		var resp message.Response
		if err = dec.Decode(&resp); err != nil {
			break
		}
		c.mu.Lock()
		ch, ok := c.waiting[resp.ID]
		c.mu.Unlock()
		if ok {
			select {
			case ch <- resp:
			default:
			}
		}
	}
	c.mu.Lock()
	if errors.Is(err, io.EOF) {
		c.err = ErrClosed
	} else {
		c.err = fmt.Errorf("%w: %v", ErrClosed, err)
	}
	c.mu.Unlock()
	close(c.done)
}

func (c *Client) closedErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
