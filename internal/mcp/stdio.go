package mcp

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/google/uuid"
)

// Scanner limits for stdio framing. Attachment payloads arrive base64
// encoded inside a single line, so the ceiling is generous.
const (
	initialScanBuffer = 64 * 1024
	maxScanBuffer     = 16 * 1024 * 1024
)

// ServeStdio runs the server over newline-delimited JSON-RPC on the given
// reader and writer (stdin/stdout in production). Requests are handled one
// at a time in arrival order; the loop exits when the context is cancelled
// or the input stream closes.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	session := uuid.NewString()[:8]
	s.logger.Printf("session %s: stdio transport started", session)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialScanBuffer), maxScanBuffer)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			s.logger.Printf("session %s: context cancelled", session)
			return ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		resp, err := s.HandleMessage(ctx, line)
		if err != nil {
			s.logger.Printf("session %s: marshal response: %v", session, err)
			continue
		}
		if resp == nil {
			// Notification, nothing to send back.
			continue
		}

		if _, err := w.Write(append(resp, '\n')); err != nil {
			s.logger.Printf("session %s: write response: %v", session, err)
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		s.logger.Printf("session %s: read: %v", session, err)
		return err
	}
	s.logger.Printf("session %s: input stream closed", session)
	return nil
}
