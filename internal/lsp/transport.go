package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reader decodes notifications from a stream. Each message is either framed
// with LSP base protocol headers or written as a single line of JSON.
// Reader is not safe for concurrent use.
type Reader struct {
	reader *bufio.Reader
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{reader: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next notification. It returns io.EOF at the end of the
// stream. A malformed message yields an error wrapping ErrInvalidMessage;
// reading can continue with the following message.
func (r *Reader) Next() (Notification, error) {
	body, err := r.readMessage()
	if err != nil {
		return Notification{}, err
	}

	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return Notification{}, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if n.Method == "" {
		return Notification{}, fmt.Errorf("%w: missing method", ErrInvalidMessage)
	}
	return n, nil
}

// readMessage reads a single message body, skipping blank lines.
func (r *Reader) readMessage() ([]byte, error) {
	for {
		line, err := r.reader.ReadString('\n')
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			if err != nil {
				return nil, err
			}
			continue
		case strings.HasPrefix(strings.ToLower(trimmed), "content-length:"):
			return r.readFramed(trimmed)
		default:
			// Newline-delimited JSON; tolerate a missing final newline.
			if err != nil && err != io.EOF {
				return nil, err
			}
			return []byte(trimmed), nil
		}
	}
}

// MaxMessageSize bounds the Content-Length of a framed message.
const MaxMessageSize = 64 << 20

// readFramed reads the remaining headers and the body of a framed message
// whose first header line is first.
func (r *Reader) readFramed(first string) ([]byte, error) {
	contentLength := -1
	line := first
	for {
		if name, value, ok := strings.Cut(line, ":"); ok && strings.EqualFold(strings.TrimSpace(name), "content-length") {
			length, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				length = 0
			}
			contentLength = length
		}
		// Ignore Content-Type and other headers

		next, err := r.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(next)
		if line == "" {
			break // End of headers
		}
	}

	if contentLength <= 0 || contentLength > MaxMessageSize {
		return nil, fmt.Errorf("%w: bad Content-Length", ErrInvalidMessage)
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(r.reader, body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return bytes.TrimSpace(body), nil
}

// Encode writes n in base protocol framing.
func Encode(w io.Writer, n Notification) error {
	if n.JSONRPC == "" {
		n.JSONRPC = "2.0"
	}
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(body)); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// NewNotification builds a notification with marshalled params.
func NewNotification(method string, params any) (Notification, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return Notification{}, fmt.Errorf("marshal %s params: %w", method, err)
	}
	return Notification{JSONRPC: "2.0", Method: method, Params: raw}, nil
}
