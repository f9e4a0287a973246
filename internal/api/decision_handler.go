package api

import (
	"net/http"

	"npdecide/adapters/excel"
	"npdecide/app"
	"npdecide/internal"
	"npdecide/internal/errors"

	"github.com/gin-gonic/gin"
)

// DecisionHandler serves the solver endpoints
type DecisionHandler struct {
	service *app.DecisionService
	logger  *internal.Logger
}

// NewDecisionHandler creates a new decision handler
func NewDecisionHandler(service *app.DecisionService, logger *internal.Logger) *DecisionHandler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DecisionHandler{
		service: service,
		logger:  logger.WithComponent("DecisionHandler"),
	}
}

// SolveContinuous handles POST /api/v1/continuous
func (h *DecisionHandler) SolveContinuous(c *gin.Context) {
	var payload ContinuousPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.fail(c, errors.Wrap(errors.ValidationError(err.Error()), "invalid continuous request"))
		return
	}

	calc, err := h.service.SolveContinuous(c.Request.Context(), payload.request())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, calc)
}

// SolveMatrix handles POST /api/v1/matrix
func (h *DecisionHandler) SolveMatrix(c *gin.Context) {
	var payload MatrixPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.fail(c, errors.Wrap(errors.ValidationError(err.Error()), "invalid matrix request"))
		return
	}

	req, err := matrixRequest(payload)
	if err != nil {
		h.fail(c, err)
		return
	}
	calc, err := h.service.SolveStrategyMatrix(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, calc)
}

// SolveMatrixBatch handles POST /api/v1/matrix/batch. Items that fail carry
// their own error; the response is 200 unless the batch itself is rejected.
func (h *DecisionHandler) SolveMatrixBatch(c *gin.Context) {
	var payload BatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.fail(c, errors.Wrap(errors.ValidationError(err.Error()), "invalid batch request"))
		return
	}

	items := make([]BatchItem, len(payload.Items))
	reqs := make([]app.MatrixRequest, 0, len(payload.Items))
	positions := make([]int, 0, len(payload.Items))
	for i, p := range payload.Items {
		items[i].Index = i
		req, err := matrixRequest(p)
		if err != nil {
			items[i].Error = errorBody(err)
			continue
		}
		reqs = append(reqs, req)
		positions = append(positions, i)
	}

	if len(reqs) > 0 {
		outcomes, err := h.service.SolveBatch(c.Request.Context(), reqs)
		if err != nil {
			h.fail(c, err)
			return
		}
		for _, o := range outcomes {
			item := &items[positions[o.Index]]
			if o.Err != nil {
				item.Error = errorBody(o.Err)
				continue
			}
			item.Calculation = o.Calculation
		}
	}
	h.ok(c, gin.H{"items": items})
}

// matrixRequest resolves the matrix from rows or text
func matrixRequest(p MatrixPayload) (app.MatrixRequest, error) {
	rows := p.Rows
	if len(rows) == 0 && p.MatrixText != "" {
		data, err := excel.ParseMatrixText(p.MatrixText)
		if err != nil {
			return app.MatrixRequest{}, err
		}
		rows = data.Rows()
	}
	return app.MatrixRequest{
		Rows:             rows,
		ControlledColumn: *p.ControlledColumn,
		LStar:            *p.LStar,
	}, nil
}

func (h *DecisionHandler) ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{RequestID: requestIDFrom(c), Data: data})
}

func (h *DecisionHandler) fail(c *gin.Context, err error) {
	body := errorBody(err)
	status := errors.HTTPStatus(body.Code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
	} else {
		h.logger.Debug("%s %s rejected: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, Envelope{RequestID: requestIDFrom(c), Error: body})
}

func errorBody(err error) *ErrorBody {
	code := errors.GetCode(err)
	message := err.Error()
	if code == errors.CodeInternalError {
		message = "internal error"
	}
	return &ErrorBody{Code: code, Message: message}
}
