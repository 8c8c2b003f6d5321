package objects

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrymomot/livefeed/pkg/broadcast"
	"github.com/dmitrymomot/livefeed/pkg/eventstream"
	"github.com/dmitrymomot/livefeed/pkg/logger"
	"github.com/dmitrymomot/livefeed/pkg/requestid"
	"github.com/dmitrymomot/livefeed/pkg/statemachine"
)

// Transport states of a Stream.
const (
	StateIdle      = statemachine.StringState("idle")
	StateStreaming = statemachine.StringState("streaming")
	StateClosed    = statemachine.StringState("closed")

	eventOpen  = statemachine.StringEvent("open")
	eventClose = statemachine.StringEvent("close")
)

// Client subscribes to a remote GET /objects stream.
type Client struct {
	url    string
	http   *http.Client
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client. It must not set a request timeout,
// which would cut the stream.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithClientLogger sets the logger. A nil logger keeps the noop logger.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		url:    strings.TrimSuffix(baseURL, "/") + "/objects",
		http:   &http.Client{},
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("client"))
	return c
}

// NewClientFromConfig creates a client for cfg.URL.
func NewClientFromConfig(cfg ClientConfig, opts ...ClientOption) *Client {
	return NewClient(cfg.URL, opts...)
}

// Stream is a remote subscription. Its embedded Subscription is the only way
// to cancel it.
type Stream struct {
	*broadcast.Subscription
	state *statemachine.SimpleStateMachine
}

// State returns the transport state: StateIdle until the server accepts the
// request, StateStreaming while events flow and StateClosed afterwards.
func (s *Stream) State() statemachine.State {
	return s.state.Current()
}

// Subscribe connects in the background and delivers items to observer.
// Connection failures, non-2xx responses, malformed events and error events
// are reported through OnError once. A normal end of stream is reported
// through OnComplete. Disposing the stream or cancelling ctx is silent.
func (c *Client) Subscribe(ctx context.Context, observer broadcast.Observer[Item]) *Stream {
	conn := &streamConn{client: c, state: newTransportState()}
	return &Stream{
		Subscription: broadcast.NewSubscription(ctx, conn.receive, observer, conn.close),
		state:        conn.state,
	}
}

func newTransportState() *statemachine.SimpleStateMachine {
	return statemachine.MustNew(StateIdle,
		statemachine.WithTransition(StateIdle, StateStreaming, eventOpen),
		statemachine.WithTransition(StateIdle, StateClosed, eventClose),
		statemachine.WithTransition(StateStreaming, StateClosed, eventClose),
	)
}

// streamConn is driven by the subscription: receive runs on the delivery
// goroutine, close runs once from whichever side stops first.
type streamConn struct {
	client *Client
	state  *statemachine.SimpleStateMachine
	reader *eventstream.Reader

	mu     sync.Mutex
	body   io.ReadCloser
	closed bool
}

func (sc *streamConn) receive(ctx context.Context) (Item, error) {
	if sc.reader == nil {
		if err := sc.open(ctx); err != nil {
			return Item{}, err
		}
	}

	for {
		ev, err := sc.reader.Next()
		if err != nil {
			if ctx.Err() != nil {
				return Item{}, ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return Item{}, broadcast.ErrCompleted
			}
			return Item{}, errors.Join(ErrStreamBroken, err)
		}

		switch ev.Type() {
		case CompleteEvent:
			return Item{}, broadcast.ErrCompleted
		case ErrorEvent:
			return Item{}, &RemoteError{Message: string(ev.Data)}
		case eventstream.MessageEvent:
			var item Item
			if err := ev.Decode(&item); err != nil {
				return Item{}, err
			}
			if item.ID == "" {
				item.ID = ev.ID
			}
			return item, nil
		}
	}
}

func (sc *streamConn) open(ctx context.Context) error {
	c := sc.client

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return errors.Join(ErrConnectionFailed, err)
	}
	req.Header.Set("Accept", eventstream.ContentType)
	req.Header.Set("Cache-Control", "no-cache")
	id := requestid.Propagate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Join(ErrConnectionFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return errors.Join(ErrUnexpectedStatus, fmt.Errorf("GET %s: %s", c.url, resp.Status))
	}

	sc.mu.Lock()
	if sc.closed {
		sc.mu.Unlock()
		_ = resp.Body.Close()
		return context.Canceled
	}
	sc.body = resp.Body
	sc.mu.Unlock()

	sc.reader = eventstream.NewReader(resp.Body)
	_ = sc.state.Fire(ctx, eventOpen, nil)
	c.logger.DebugContext(ctx, "Stream opened", logger.RequestID(id))
	return nil
}

func (sc *streamConn) close() {
	sc.mu.Lock()
	sc.closed = true
	body := sc.body
	sc.mu.Unlock()

	if body != nil {
		_ = body.Close()
	}
	_ = sc.state.Fire(context.Background(), eventClose, nil)
	sc.client.logger.Debug("Stream closed")
}
