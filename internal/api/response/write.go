package response

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
)

const contentTypeJSON = "application/json"

// encodeFailureBody is sent when a payload cannot be serialised
const encodeFailureBody = `{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response"}}` + "\n"

// JSON marshals data and writes it with the given status. A nil payload writes
// only the status line.
func JSON(w http.ResponseWriter, status int, data any) {
	if data == nil {
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		writeEncodeFailure(w, err)
		return
	}
	writeBody(w, status, append(body, '\n'))
}

// Encoded buffers whatever encode produces and sends it as a JSON body. Nothing
// reaches the client until encode returns, so a failure still turns into a 500.
func Encoded(w http.ResponseWriter, status int, encode func(io.Writer) error) {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		writeEncodeFailure(w, err)
		return
	}
	writeBody(w, status, buf.Bytes())
}

// NoContent writes a 204 with no body
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	h := w.Header()
	h.Set("Content-Type", contentTypeJSON)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeEncodeFailure(w http.ResponseWriter, err error) {
	slog.Error("failed to encode response", slog.String("error", err.Error()))
	writeBody(w, http.StatusInternalServerError, []byte(encodeFailureBody))
}
