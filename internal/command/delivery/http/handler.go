package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"lifehub-assistant/internal/command"
	"lifehub-assistant/internal/interpreter"
	"lifehub-assistant/internal/model"
	pkgResponse "lifehub-assistant/pkg/response"
)

type processCommandRequest struct {
	Query   string `json:"query" binding:"required"`
	Execute bool   `json:"execute"`
}

type processCommandResponse struct {
	Intent         string             `json:"intent"`
	Params         interpreter.Params `json:"params"`
	Confirmation   string             `json:"confirmation"`
	OriginalQuery  string             `json:"original_query"`
	Degraded       bool               `json:"degraded,omitempty"`
	DegradedReason string             `json:"degraded_reason,omitempty"`
	Execution      *executionResponse `json:"execution,omitempty"`
}

type executionResponse struct {
	Executed  bool   `json:"executed"`
	RecordID  string `json:"record_id,omitempty"`
	RecordURL string `json:"record_url,omitempty"`
	EventURL  string `json:"event_url,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ProcessCommand godoc
// @Summary      Interpret a natural-language command
// @Description  Classifies the utterance, extracts parameters, and optionally executes the resulting action.
// @Tags         commands
// @Accept       json
// @Produce      json
// @Param        request  body      processCommandRequest  true  "Command to interpret"
// @Success      200      {object}  pkgResponse.Resp
// @Router       /api/v1/commands [post]
func (h *handler) ProcessCommand(c *gin.Context) {
	ctx := c.Request.Context()

	var req processCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		pkgResponse.Error(c, err, nil)
		return
	}

	sc := scopeFrom(c)

	result, err := h.interp.ProcessQuery(ctx, sc, interpreter.ProcessInput{Query: req.Query})
	if err != nil {
		h.l.Errorf(ctx, "http handler: ProcessQuery failed: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	resp := processCommandResponse{
		Intent:         string(result.Intent),
		Params:         result.Params,
		Confirmation:   result.Confirmation,
		OriginalQuery:  result.OriginalQuery,
		Degraded:       result.Degraded,
		DegradedReason: result.DegradedReason,
	}

	if req.Execute {
		out, err := h.executor.Execute(ctx, sc, result)
		if err != nil {
			h.l.Errorf(ctx, "http handler: Execute failed: %v", err)
			pkgResponse.InternalError(c, err)
			return
		}
		resp.Execution = &executionResponse{
			Executed:  out.Executed,
			RecordID:  out.Record.ID,
			RecordURL: out.Record.URL,
			EventURL:  out.EventURL,
			Message:   out.Message,
		}
	}

	pkgResponse.OK(c, resp)
}

// SearchKnowledge godoc
// @Summary      Semantic search over saved entries
// @Tags         knowledge
// @Produce      json
// @Param        q      query     string  true   "Search query"
// @Param        limit  query     int     false  "Maximum results"
// @Success      200    {object}  pkgResponse.Resp
// @Router       /api/v1/knowledge/search [get]
func (h *handler) SearchKnowledge(c *gin.Context) {
	ctx := c.Request.Context()

	limit, _ := strconv.Atoi(c.Query("limit"))

	out, err := h.executor.Search(ctx, scopeFrom(c), command.SearchInput{
		Query: c.Query("q"),
		Limit: limit,
	})
	if err != nil {
		if err == command.ErrEmptyQuery {
			pkgResponse.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "http handler: Search failed: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, out)
}

// ProcessingStatus godoc
// @Summary      Whether a command is currently being interpreted
// @Tags         commands
// @Produce      json
// @Success      200  {object}  pkgResponse.Resp
// @Router       /api/v1/commands/status [get]
func (h *handler) ProcessingStatus(c *gin.Context) {
	pkgResponse.OK(c, map[string]bool{"processing": h.interp.IsProcessing()})
}

// scopeFrom builds the acting user's scope from request headers. The
// service sits behind a gateway that authenticates and injects identity.
func scopeFrom(c *gin.Context) model.Scope {
	return model.Scope{
		UserID:   c.GetHeader("X-User-ID"),
		Username: c.GetHeader("X-Username"),
	}
}
