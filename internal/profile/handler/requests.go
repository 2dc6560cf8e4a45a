package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "wordwatch/pkg/domain-errors"
)

// pathID parses a Discord snowflake path parameter. Values past the signed
// 8-byte range are rejected before they reach the engine.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, dErrors.New(dErrors.CodeOutOfRange, "Over 8-byte ints are not allowed")
		}
		return 0, dErrors.Newf(dErrors.CodeBadRequest, "invalid %s: %q", name, raw)
	}
	return id, nil
}

func pathPair(r *http.Request) (serverID, userID int64, err error) {
	serverID, err = pathID(r, "serverID")
	if err != nil {
		return 0, 0, err
	}
	userID, err = pathID(r, "userID")
	if err != nil {
		return 0, 0, err
	}
	return serverID, userID, nil
}

func queryWord(r *http.Request) (string, error) {
	word := r.URL.Query().Get("word")
	if word == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "missing required query parameter: word")
	}
	return word, nil
}

// decodeBody decodes a bare JSON value (array, object or number) into dst.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dErrors.New(dErrors.CodeBadRequest, "request body is required")
		}
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed request body")
	}
	return nil
}
