// Package session implements the line-based request loop used when the tool
// is launched by an external merge tool.
//
// Each request is three lines on standard input: the source path, its
// encoding and the path the outline is written to. The reply is a single
// line, OK or KO. A line reading "end" or the end of input closes the session.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/semoutline/internal/logging"
	"github.com/yaklabco/semoutline/pkg/outline"
)

// Replies written for each request.
const (
	ReplyOK = "OK"
	ReplyKO = "KO"
)

// EndCommand closes the session. It is matched case-insensitively.
const EndCommand = "end"

// ReadyByte is written to the flag file once the tool accepts requests.
const ReadyByte = 0x42

// ErrTruncatedRequest is returned when input ends in the middle of a request.
var ErrTruncatedRequest = errors.New("truncated request")

// Processor outlines one source file and writes the result.
type Processor interface {
	OutlineTo(ctx context.Context, inputPath, encoding, outputPath string) (*outline.File, error)
}

// Request is one outline request read from the session input.
type Request struct {
	InputPath  string
	Encoding   string
	OutputPath string
}

// Stats summarizes a finished session.
type Stats struct {
	Requests      int
	WithErrors    int
	Failed        int
	TotalDuration time.Duration
}

// SignalReady writes the ready byte to the flag file the caller waits on.
func SignalReady(path string) error {
	if err := os.WriteFile(path, []byte{ReadyByte}, 0o600); err != nil {
		return fmt.Errorf("write flag file: %w", err)
	}
	return nil
}

// Run serves requests from in until the end command, end of input or
// cancellation of ctx. A request that fails is answered KO and the session
// continues; only failures to read input or write replies end it early.
func Run(ctx context.Context, in io.Reader, out io.Writer, processor Processor) (Stats, error) {
	logger := logging.FromContext(ctx)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("session cancelled: %w", err)
		}

		req, done, err := readRequest(scanner)
		if err != nil {
			return stats, err
		}
		if done {
			logger.Debug("session ended", logging.FieldRequests, stats.Requests)
			return stats, nil
		}

		stats.Requests++
		start := time.Now()
		reply := serve(ctx, processor, req, &stats)
		elapsed := time.Since(start)
		stats.TotalDuration += elapsed

		logger.Debug("request served",
			logging.FieldInput, req.InputPath,
			logging.FieldOutput, req.OutputPath,
			logging.FieldDuration, elapsed,
		)

		if _, err := fmt.Fprintln(out, reply); err != nil {
			return stats, fmt.Errorf("write reply: %w", err)
		}
	}
}

func serve(ctx context.Context, processor Processor, req Request, stats *Stats) string {
	logger := logging.FromContext(ctx)

	file, err := processor.OutlineTo(ctx, req.InputPath, req.Encoding, req.OutputPath)
	if err != nil {
		stats.Failed++
		logger.Error("outline failed", logging.FieldInput, req.InputPath, logging.FieldError, err)
		return ReplyKO
	}

	if file.ParsingErrorsDetected() {
		stats.WithErrors++
		first := file.ParsingErrors[0]
		logger.Warn(first.Message,
			logging.FieldInput, req.InputPath,
			logging.FieldLine, first.Location.Line,
			logging.FieldColumn, first.Location.Column,
			logging.FieldParseErrors, len(file.ParsingErrors),
		)
		return ReplyKO
	}

	return ReplyOK
}

// readRequest reads the next request. done is true when the session ends
// cleanly before a request starts.
func readRequest(scanner *bufio.Scanner) (Request, bool, error) {
	var lines [3]string
	for i := range lines {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return Request{}, false, fmt.Errorf("read request: %w", err)
			}
			if i == 0 {
				return Request{}, true, nil
			}
			return Request{}, false, fmt.Errorf("%w: got %d of 3 lines", ErrTruncatedRequest, i)
		}
		lines[i] = strings.TrimRight(scanner.Text(), "\r")

		if i == 0 && strings.EqualFold(strings.TrimSpace(lines[0]), EndCommand) {
			return Request{}, true, nil
		}
	}

	return Request{InputPath: lines[0], Encoding: lines[1], OutputPath: lines[2]}, false, nil
}
