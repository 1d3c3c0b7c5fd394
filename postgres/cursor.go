package postgres

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// pageKey is the (created_at, id) keyset position of the last row handed out.
type pageKey struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

func encodeCursor(key pageKey) (string, error) {
	bytesJSON, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("failed to encode to JSON: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(bytesJSON), nil
}

func decodeCursor(cursor string) (pageKey, error) {
	bytesJSON, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return pageKey{}, fmt.Errorf("failed to b64 decode: %w", err)
	}

	var key pageKey
	err = json.Unmarshal(bytesJSON, &key)
	if err != nil {
		return pageKey{}, fmt.Errorf("failed to json decode: %w", err)
	}
	if key.ID == "" || key.CreatedAt.IsZero() {
		return pageKey{}, errors.New("cursor is missing its position")
	}

	return key, nil
}
