package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/scrawlmath/scrawl/internal/pipeline"
)

// Request is one unit of work: the path of an equation image to solve.
// Bare (non-JSON) input lines are also accepted as paths.
type Request struct {
	Path string `json:"path"`
}

// Response is the per-request result line. Exactly one of the
// equation/solution pair or Error is meaningful.
type Response struct {
	Equation string `json:"equation,omitempty"`
	Solution string `json:"solution,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Server runs the pipeline over a newline-delimited request stream. This
// is the seam the chat front-end plugs into: it downloads the photo,
// writes the path on stdin, and reads one JSON result line back.
type Server struct {
	pipe *pipeline.Pipeline
	in   io.Reader
	out  io.Writer
	log  zerolog.Logger
}

// New creates a server around a pipeline.
func New(pipe *pipeline.Pipeline, in io.Reader, out io.Writer, log zerolog.Logger) *Server {
	return &Server{pipe: pipe, in: in, out: out, log: log}
}

// Run processes requests until the input stream ends or the context is
// canceled. Per-request failures become error responses; only transport
// failures end the loop with an error.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	// Room for long paths and future request fields.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(s.out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		req := parseRequest(line)
		if err := encoder.Encode(s.handle(req)); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	return nil
}

// parseRequest accepts either a JSON request object or a bare path.
func parseRequest(line []byte) Request {
	if line[0] == '{' {
		var req Request
		if err := json.Unmarshal(line, &req); err == nil {
			return req
		}
	}
	return Request{Path: string(line)}
}

func (s *Server) handle(req Request) Response {
	result, err := s.pipe.Run(req.Path)
	if err != nil {
		s.log.Error().Err(err).Str("image", req.Path).Msg("run failed")
		return Response{Error: err.Error()}
	}
	return Response{Equation: result.Equation, Solution: result.Solution}
}
