package api

import (
	"npdecide/app"
)

// distributionPayload describes one hypothesis in a continuous request
type distributionPayload struct {
	Family string   `json:"family" binding:"required"`
	Param1 *float64 `json:"param1" binding:"required"`
	Param2 *float64 `json:"param2" binding:"required"`
}

// ContinuousPayload is the body of POST /api/v1/continuous
type ContinuousPayload struct {
	Alpha *float64             `json:"alpha" binding:"required"`
	H0    *distributionPayload `json:"h0" binding:"required"`
	H1    *distributionPayload `json:"h1" binding:"required"`
}

func (p ContinuousPayload) request() app.ContinuousRequest {
	return app.ContinuousRequest{
		Alpha:    *p.Alpha,
		H0Family: p.H0.Family,
		H0Param1: *p.H0.Param1,
		H0Param2: *p.H0.Param2,
		H1Family: p.H1.Family,
		H1Param1: *p.H1.Param1,
		H1Param2: *p.H1.Param2,
	}
}

// MatrixPayload is the body of POST /api/v1/matrix. Either Rows or
// MatrixText (one "L, J" pair per line) must be given.
type MatrixPayload struct {
	Rows             [][]float64 `json:"rows" binding:"required_without=MatrixText"`
	MatrixText       string      `json:"matrix_text" binding:"required_without=Rows"`
	ControlledColumn *int        `json:"controlled_column" binding:"required"`
	LStar            *float64    `json:"l_star" binding:"required"`
}

// BatchPayload is the body of POST /api/v1/matrix/batch
type BatchPayload struct {
	Items []MatrixPayload `json:"items" binding:"required,min=1,dive"`
}

// ErrorBody is the error half of every response envelope
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope wraps every API response
type Envelope struct {
	RequestID string      `json:"request_id"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
}

// BatchItem is one entry of a batch response
type BatchItem struct {
	Index       int                    `json:"index"`
	Calculation *app.MatrixCalculation `json:"calculation,omitempty"`
	Error       *ErrorBody             `json:"error,omitempty"`
}
