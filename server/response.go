package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
)

// TranscribeResponse is the success body of POST /api/transcribe.
type TranscribeResponse struct {
	Text string `json:"text"`
}

// ModeResponse is the body of GET /api/mode.
type ModeResponse struct {
	Mode string `json:"mode"`
}

// RespondWithError maps err onto its AppError status and writes {"error": msg}.
// Unclassified errors become a generic 500. Causes and details are logged,
// never sent.
func RespondWithError(c *gin.Context, log *logger.Logger, err error) {
	appErr := errors.From(err)

	fields := make(map[string]interface{}, len(appErr.Details)+3)
	for k, v := range appErr.Details {
		fields[k] = v
	}
	fields["code"] = appErr.Code
	fields["status"] = appErr.HTTPStatus
	if appErr.Cause != nil {
		fields["cause"] = appErr.Cause.Error()
	}

	log = log.WithContext(c.Request.Context())
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error(appErr.Message, fields)
	} else {
		log.Warn(appErr.Message, fields)
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response with data as the body.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
