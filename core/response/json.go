package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kyrinjs/Kyrin/core/handler"
)

// JSON creates an application/json response with 200 OK status.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with a custom status
// code. The value is marshaled before anything is written, so a serialization
// failure (cyclic structure, unsupported type) surfaces as an error while the
// response can still be replaced with a 500.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		body, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode json response: %w", err)
		}

		if status == 0 {
			if v == nil {
				status = http.StatusNoContent
			} else {
				status = http.StatusOK
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)

		// 204 and 304 must not carry a body
		switch status {
		case http.StatusNoContent, http.StatusNotModified:
			return nil
		}

		_, err = w.Write(body)
		return err
	}
}
