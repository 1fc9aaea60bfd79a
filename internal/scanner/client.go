package scanner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"bcbp_trmnl/internal/metrics"
	"bcbp_trmnl/internal/models"
)

// maxLineLength bounds a single payload.
const maxLineLength = 4096

// Client streams boarding pass payloads from a scanner hub. The hub sends one
// decoded barcode per line.
type Client struct {
	conn         net.Conn
	reader       *bufio.Reader
	addr         string
	maxRetries   int
	retryBackoff time.Duration
	maxBackoff   time.Duration
	now          func() time.Time
}

func NewClient(addr string) *Client {
	return &Client{
		addr:         addr,
		maxRetries:   -1, // -1 means infinite retries
		retryBackoff: 1 * time.Second,
		maxBackoff:   30 * time.Second,
		now:          time.Now,
	}
}

// Addr returns the scanner hub address.
func (c *Client) Addr() string {
	return c.addr
}

// connect establishes a TCP connection to the scanner hub
func (c *Client) connect(ctx context.Context) error {
	dialer := net.Dialer{
		Timeout: 5 * time.Second,
	}

	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.addr, err)
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// StreamMessages decodes every line received from the hub and sends the
// result on messageChan, reconnecting until ctx is cancelled.
func (c *Client) StreamMessages(ctx context.Context, messageChan chan<- *models.ScanMessage) error {
	retryCount := 0
	backoff := c.retryBackoff

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if c.conn == nil {
			if err := c.connect(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				retryCount++
				metrics.IncScannerReconnects()
				if c.maxRetries > 0 && retryCount > c.maxRetries {
					return fmt.Errorf("max retries (%d) exceeded", c.maxRetries)
				}
				slog.Warn("Failed to connect to scanner hub", "addr", c.addr, "retry", retryCount, "error", err)

				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(backoff):
				}
				// Exponential backoff: 1s, 2s, 4s, 8s, max 30s
				backoff *= 2
				if backoff > c.maxBackoff {
					backoff = c.maxBackoff
				}
				continue
			}
			retryCount = 0
			backoff = c.retryBackoff
			metrics.SetScannerConnected(true)
			slog.Info("Connected to scanner hub", "addr", c.addr)
		}

		err := c.readMessages(ctx, messageChan)
		if err != nil && ctx.Err() == nil {
			slog.Warn("Connection error, reconnecting", "addr", c.addr, "error", err)
			c.closeConnection()
			continue
		}

		return ctx.Err()
	}
}

func (c *Client) readMessages(ctx context.Context, messageChan chan<- *models.ScanMessage) error {
	var pending strings.Builder
	discarding := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := c.conn.SetReadDeadline(time.Now().Add(1 * time.Second)); err != nil {
			return fmt.Errorf("failed to set read deadline: %w", err)
		}

		chunk, err := c.reader.ReadSlice('\n')
		if !discarding {
			pending.Write(chunk)
		}
		if err != nil {
			var netErr net.Error
			switch {
			case errors.As(err, &netErr) && netErr.Timeout(), errors.Is(err, bufio.ErrBufferFull):
				// The line is incomplete; it stays pending unless it is already too long
				if !discarding && pending.Len() > maxLineLength+1 {
					slog.Warn("Dropping oversized payload", "addr", c.addr, "length", pending.Len())
					pending.Reset()
					discarding = true
				}
				continue
			case errors.Is(err, io.EOF):
				if !discarding {
					if err := c.emit(ctx, messageChan, pending.String()); err != nil {
						return err
					}
				}
				return fmt.Errorf("connection closed")
			default:
				return fmt.Errorf("failed to read payload: %w", err)
			}
		}

		if discarding {
			// The newline ends the oversized payload
			discarding = false
			continue
		}

		line := pending.String()
		pending.Reset()
		if err := c.emit(ctx, messageChan, line); err != nil {
			return err
		}
	}
}

// emit decodes one payload and sends it on messageChan. Blank and oversized
// payloads are skipped.
func (c *Client) emit(ctx context.Context, messageChan chan<- *models.ScanMessage, raw string) error {
	line := strings.TrimRight(raw, "\r\n")
	if len(line) > maxLineLength {
		slog.Warn("Dropping oversized payload", "addr", c.addr, "length", len(line))
		return nil
	}
	if strings.TrimSpace(line) == "" {
		return nil
	}

	msg := models.NewScanMessage(line, c.addr, c.now())
	metrics.ObserveScan(msg)
	if !msg.Valid() {
		slog.Debug("Failed to decode boarding pass", "addr", c.addr, "code", msg.ErrorCode(), "error", msg.Err)
	}

	select {
	case messageChan <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// closeConnection closes the current connection
func (c *Client) closeConnection() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
		c.reader = nil
		metrics.SetScannerConnected(false)
	}
}

// Close closes the connection
func (c *Client) Close() error {
	c.closeConnection()
	return nil
}
