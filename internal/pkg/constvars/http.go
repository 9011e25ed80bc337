package constvars

const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodDelete = "DELETE"
)

const (
	MIMETextHTML        = "text/html"
	MIMEApplicationJSON = "application/json"
	MIMEApplicationForm = "application/x-www-form-urlencoded"

	MIMETextHTMLCharsetUTF8        = "text/html; charset=utf-8"
	MIMEApplicationJSONCharsetUTF8 = "application/json; charset=utf-8"
)

const (
	StatusOK                  = 200
	StatusSeeOther            = 303
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusUnprocessableEntity = 422
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusGatewayTimeout      = 504
)

const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderLocation    = "Location"
	HeaderXRequestID  = "X-Request-ID"
)
