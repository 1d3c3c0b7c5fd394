package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Response is what a handler method produces: a status code and, unless the
// status has no content, a JSON body.
type Response struct {
	StatusCode int
	Body       any
}

func errorResponse(statusCode int, code ErrorCode, message string) Response {
	return Response{
		StatusCode: statusCode,
		Body:       Error{Code: code, Message: message},
	}
}

func (r Response) VisitResponse(w http.ResponseWriter) error {
	if r.Body == nil {
		w.WriteHeader(r.StatusCode)
		return nil
	}

	jsonBody, err := json.Marshal(r.Body)
	if err != nil {
		return fmt.Errorf("failed to marshal response body: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.StatusCode)
	_, err = w.Write(jsonBody)
	return err
}

type handlerFunc func(r *http.Request) (Response, error)

// serve adapts a handler method to net/http. Unexpected errors become a 500.
func (a *API) serve(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h(r)
		if err != nil {
			a.log(r.Context()).Error("Unhandled error in handler", "error", err, "path", r.URL.Path)
			resp = errorResponse(http.StatusInternalServerError, InternalError, "Something went wrong")
		}

		if err := resp.VisitResponse(w); err != nil {
			a.log(r.Context()).Error("Failed to write response", "error", err)
			http.Error(w, "failed to write response", http.StatusInternalServerError)
		}
	}
}

// decodeBody reads an optional JSON body into a new T. A missing body gives nil.
func decodeBody[T any](r *http.Request) (*T, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return nil, nil
	}

	var body T
	err := json.NewDecoder(r.Body).Decode(&body)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &body, nil
}
