package response

import "github.com/gofiber/fiber/v3"

// RequestIDLocal is the fiber Locals key the access log stores the request id under.
const RequestIDLocal = "request_id"

type SemanticResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Meta      *Meta  `json:"meta,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Meta struct {
	Count int `json:"count"`
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

func Success(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data, nil, false)
}

// List is Success with the item count in meta.
func List(c fiber.Ctx, message string, data any, count int) error {
	return write(c, fiber.StatusOK, message, data, &Meta{Count: count}, false)
}

// Error echoes the request id so clients can quote it when reporting a failure.
func Error(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data, nil, true)
}

func write(c fiber.Ctx, status int, message string, data any, meta *Meta, withRequestID bool) error {
	st := status
	if st < 100 || st > 599 {
		st = fiber.StatusInternalServerError
	}
	if message == "" {
		message = defaultMessageForStatus(st)
	}

	body := SemanticResponse{Status: st, Message: message, Data: data, Meta: meta}
	if withRequestID {
		body.RequestID, _ = c.Locals(RequestIDLocal).(string)
	}
	return c.Status(st).JSON(body)
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusOK, fiber.StatusCreated:
		return MessageOK
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	}
	if status >= 500 {
		return MessageInternalServerError
	}
	return MessageError
}
