package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
)

const (
	CodeInvalidRequest  = "InvalidRequest"
	CodeInvalidDate     = "InvalidDate"
	CodeDuplicateWindow = "DuplicateWindow"
	CodeStorageError    = "StorageError"
	CodeInternalError   = "InternalError"
	CodeStorageDisabled = "StorageDisabled"
	CodeInvalidImage    = "InvalidImage"
)

var errorStatus = map[string]int{
	domain.CodeInvalidService:    http.StatusUnprocessableEntity,
	domain.CodeNoAvailability:    http.StatusUnprocessableEntity,
	domain.CodeSlotTaken:         http.StatusConflict,
	domain.CodeInvalidTransition: http.StatusConflict,
	CodeDuplicateWindow:          http.StatusConflict,
	domain.CodeNotFound:          http.StatusNotFound,
	domain.CodeServiceNotOffered: http.StatusNotFound,
	domain.CodeForbidden:         http.StatusForbidden,
	domain.CodeInvalidTime:       http.StatusBadRequest,
	CodeInvalidDate:              http.StatusBadRequest,
	CodeInvalidRequest:           http.StatusBadRequest,
}

var errorMessage = map[string]string{
	domain.CodeInvalidService:    "Service is unknown, inactive or not offered by this trainer.",
	domain.CodeNoAvailability:    "The trainer is not available at the requested time.",
	domain.CodeSlotTaken:         "The requested slot is already booked.",
	domain.CodeInvalidTransition: "The appointment cannot move to the requested status.",
	domain.CodeNotFound:          "Resource not found.",
	domain.CodeServiceNotOffered: "The trainer does not offer this service.",
	domain.CodeForbidden:         "You are not allowed to perform this action.",
	domain.CodeInvalidTime:       "Time must be HH:MM.",
	CodeInvalidDate:              "Invalid date or date range.",
}

// respondError writes the JSON error body matching err. Business errors map
// to their own status; storage faults become 503 and anything else 500.
func respondError(c *gin.Context, err error) {
	if code := httperr.CodeOf(err); code != "" {
		status, ok := errorStatus[code]
		if !ok {
			status = http.StatusBadRequest
		}
		msg := errorMessage[code]
		if msg == "" {
			msg = code
		}
		httperr.Write(c, status, code, msg)
		return
	}

	if httperr.IsStorage(err) {
		log.Printf("storage error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		httperr.Unavailable(c, CodeStorageError, "Storage is temporarily unavailable.")
		return
	}

	log.Printf("unexpected error on %s %s: %v", c.Request.Method, c.FullPath(), err)
	httperr.Internal(c, CodeInternalError, "Unexpected error.")
}

func badRequest(c *gin.Context, message string) {
	httperr.BadRequest(c, CodeInvalidRequest, message)
}
