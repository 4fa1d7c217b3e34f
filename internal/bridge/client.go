package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/ytget/img2pdf/internal/model"
)

// Transport limits
const (
	// MaxLineSize bounds a single response line; thumbnail batches are base64 heavy
	MaxLineSize     = 64 << 20
	InitialLineSize = 64 << 10
)

// ErrClosed is returned for calls made after, or pending during, shutdown
var ErrClosed = errors.New("backend connection closed")

// Client is a backend connection. It is safe for concurrent use; responses are
// matched to calls by request id.
type Client struct {
	w       io.WriteCloser
	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan response
	closed  bool

	done       chan struct{}
	cmd        *exec.Cmd
	stderrDone chan struct{}
}

// NewClient creates a client over an established transport and starts reading
// responses from r.
func NewClient(r io.Reader, w io.WriteCloser) *Client {
	c := &Client{
		w:       w,
		pending: make(map[string]chan response),
		done:    make(chan struct{}),
	}
	go c.readLoop(r)
	return c
}

// Start launches the backend command and connects to its stdio.
func Start(ctx context.Context, command string, args ...string) (*Client, error) {
	if strings.TrimSpace(command) == "" {
		return nil, fmt.Errorf("backend command is empty: %w", model.ErrInvalidArgument)
	}

	cmd := exec.CommandContext(ctx, command, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start backend %s: %w", command, err)
	}
	slog.Info("Backend started", "command", command, "pid", cmd.Process.Pid)

	c := NewClient(stdout, stdin)
	c.cmd = cmd
	c.stderrDone = make(chan struct{})
	go func() {
		defer close(c.stderrDone)
		logStderr(stderr)
	}()
	return c, nil
}

// GenerateThumbnails asks the backend for previews of paths, in order.
func (c *Client) GenerateThumbnails(ctx context.Context, paths []string) ([]model.ImageItem, error) {
	var thumbs []thumbnail
	if err := c.Call(ctx, MethodGenerateThumbnails, thumbnailParams{Images: paths}, &thumbs); err != nil {
		return nil, err
	}

	items := make([]model.ImageItem, 0, len(thumbs))
	for _, t := range thumbs {
		item := model.NewImageItem(t.Src, t.Base64)
		if t.Name != "" {
			item.Name = t.Name
		}
		items = append(items, item)
	}
	return items, nil
}

// MergeImagesToPDF asks the backend to write images to output as one PDF.
func (c *Client) MergeImagesToPDF(ctx context.Context, output string, images []model.ImageItem) error {
	refs := make([]imageRef, 0, len(images))
	for _, img := range images {
		refs = append(refs, imageRef{Path: img.Path})
	}
	return c.Call(ctx, MethodMergeImagesToPDF, mergeParams{Output: output, Images: refs}, nil)
}

// OpenPath asks the backend to open path with the system viewer.
func (c *Client) OpenPath(ctx context.Context, path string) error {
	return c.Call(ctx, MethodOpenPath, pathParams{Path: path}, nil)
}

// Call sends one request and waits for its response. A non-nil result is
// decoded from the response payload. Backend failures are *RemoteError.
func (c *Client) Call(ctx context.Context, method string, params, result any) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate request id: %w", err)
	}
	key := id.String()

	line, err := json.Marshal(request{ID: key, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	ch := make(chan response, 1)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.pending[key] = ch
	c.mu.Unlock()

	slog.Debug("Backend request", "method", method, "id", key)

	if err := c.write(append(line, '\n')); err != nil {
		c.forget(key)
		if c.isClosed() {
			return ErrClosed
		}
		return fmt.Errorf("failed to send %s request: %w", method, err)
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return ErrClosed
		}
		if resp.Error != "" {
			return &RemoteError{Method: method, Message: resp.Error}
		}
		if result == nil || len(resp.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", method, err)
		}
		return nil
	case <-ctx.Done():
		c.forget(key)
		return ctx.Err()
	}
}

// Close shuts the connection down. Pending calls fail with ErrClosed. When the
// client owns a backend process, Close waits for it to exit.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.writeMu.Lock()
	err := c.w.Close()
	c.writeMu.Unlock()

	if c.cmd != nil {
		<-c.done
		<-c.stderrDone
		if waitErr := c.cmd.Wait(); waitErr != nil && err == nil {
			err = fmt.Errorf("backend exited: %w", waitErr)
		}
	}
	c.failPending()
	return err
}

// Done is closed once the response stream ends
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) write(line []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := c.w.Write(line)
	return err
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) forget(key string) {
	c.mu.Lock()
	delete(c.pending, key)
	c.mu.Unlock()
}

func (c *Client) readLoop(r io.Reader) {
	defer close(c.done)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, InitialLineSize), MaxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var resp response
		if err := json.Unmarshal(line, &resp); err != nil {
			slog.Warn("Discarding malformed backend message", "error", err)
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		delete(c.pending, resp.ID)
		c.mu.Unlock()

		if !ok {
			slog.Warn("Backend response for unknown request", "id", resp.ID)
			continue
		}
		ch <- resp
	}

	if err := scanner.Err(); err != nil {
		slog.Error("Backend stream failed", "error", err)
	}

	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.failPending()
}

func (c *Client) failPending() {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[string]chan response)
	c.mu.Unlock()

	for _, ch := range pending {
		close(ch)
	}
}

// logStderr forwards backend diagnostics to the log
func logStderr(stderr io.Reader) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			slog.Debug("backend", "line", line)
		}
	}
}
