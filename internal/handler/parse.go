// internal/handler/parse.go
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/polar/internal/report"
	"github.com/dangerclosesec/polar/policy/parser"
	"github.com/dangerclosesec/polar/policy/term"
	"github.com/go-playground/validator/v10"
)

// SourceIDHeader carries the id assigned to a parsed source unit, so request
// logs can be matched with parse results
const SourceIDHeader = "X-Policy-Source-Id"

type ParseHandler struct {
	validate *validator.Validate
	maxBytes int
	logger   *slog.Logger
}

func NewParseHandler(maxBytes int, logger *slog.Logger) *ParseHandler {
	return &ParseHandler{
		validate: validator.New(),
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// ParseRequest represents the request body for parsing a policy
type ParseRequest struct {
	Source   string `json:"source" validate:"required"`
	Filename string `json:"filename" validate:"omitempty,max=255"`
}

// ParseResponse lists the parsed lines
type ParseResponse struct {
	BaseResponse
	Lines []report.LineReport `json:"lines"`
}

// ParseErrorDetails locates a parse error in the submitted source
type ParseErrorDetails struct {
	Kind   string `json:"kind"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// Parse parses the submitted policy and summarizes its lines
func (h *ParseHandler) Parse(w http.ResponseWriter, r *http.Request) {
	// Allow room for JSON escaping around the source
	r.Body = http.MaxBytesReader(w, r.Body, int64(h.maxBytes)*2+1024)

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validateRequest(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Details: validationMessages(err),
		})
		return
	}

	src := term.NewSource(req.Filename, req.Source)
	w.Header().Set(SourceIDHeader, src.ID.String())

	lines, err := parser.ParseString(src)
	if err != nil {
		h.handleParseError(w, err)
		return
	}

	h.logger.Debug("policy parsed", "source_id", src.ID, "lines", len(lines))
	respondWithJSON(w, http.StatusOK, ParseResponse{
		BaseResponse: BaseResponse{Ok: true},
		Lines:        report.Summarize(lines),
	})
}

func (h *ParseHandler) validateRequest(req *ParseRequest) error {
	if err := h.validate.Struct(req); err != nil {
		return err
	}
	return h.validate.Var(req.Source, fmt.Sprintf("max=%d", h.maxBytes))
}

func (h *ParseHandler) handleParseError(w http.ResponseWriter, err error) {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		h.logger.Error("unexpected parse failure", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error: perr.Error(),
		Details: ParseErrorDetails{
			Kind:   perr.Kind.String(),
			Line:   perr.Span.Line(),
			Column: perr.Span.Column(),
			Start:  perr.Span.Start,
			End:    perr.Span.End,
		},
	})
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if field == "" {
			field = "Source"
		}
		if fe.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s failed on %s=%s", field, fe.Tag(), fe.Param()))
			continue
		}
		messages = append(messages, fmt.Sprintf("%s failed on %s", field, fe.Tag()))
	}
	return messages
}
