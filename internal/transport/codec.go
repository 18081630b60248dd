package transport

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kubev2v/ipc-worker/internal/models"
)

var ErrMalformedFrame = errors.New("malformed frame")

// MarshalRequest encodes a request as [id, payload].
func MarshalRequest(req models.Request[Token]) ([]byte, error) {
	return json.Marshal([]any{req.ID, req.Payload})
}

// UnmarshalRequest decodes a [id, payload] frame. The payload must be a
// JSON string.
func UnmarshalRequest(frame []byte) (models.Request[Token], error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(frame, &parts); err != nil {
		return models.Request[Token]{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if len(parts) != 2 {
		return models.Request[Token]{}, fmt.Errorf("%w: expected 2 elements, got %d", ErrMalformedFrame, len(parts))
	}

	var req models.Request[Token]
	if err := json.Unmarshal(parts[0], &req.ID); err != nil {
		return models.Request[Token]{}, fmt.Errorf("%w: id: %v", ErrMalformedFrame, err)
	}
	if err := json.Unmarshal(parts[1], &req.Payload); err != nil {
		return models.Request[Token]{}, fmt.Errorf("%w: payload: %v", ErrMalformedFrame, err)
	}
	return req, nil
}

// MarshalResponse encodes [id, result] or, for a failed response,
// [id, null, error].
func MarshalResponse(resp models.Response[Token]) ([]byte, error) {
	if resp.Failed() {
		return json.Marshal([]any{resp.ID, nil, resp.Err})
	}
	return json.Marshal([]any{resp.ID, resp.Result})
}

func UnmarshalResponse(frame []byte) (models.Response[Token], error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(frame, &parts); err != nil {
		return models.Response[Token]{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if len(parts) != 2 && len(parts) != 3 {
		return models.Response[Token]{}, fmt.Errorf("%w: expected 2 or 3 elements, got %d", ErrMalformedFrame, len(parts))
	}

	var resp models.Response[Token]
	if err := json.Unmarshal(parts[0], &resp.ID); err != nil {
		return models.Response[Token]{}, fmt.Errorf("%w: id: %v", ErrMalformedFrame, err)
	}
	if len(parts) == 3 {
		if err := json.Unmarshal(parts[2], &resp.Err); err != nil {
			return models.Response[Token]{}, fmt.Errorf("%w: error: %v", ErrMalformedFrame, err)
		}
		return resp, nil
	}
	if err := json.Unmarshal(parts[1], &resp.Result); err != nil {
		return models.Response[Token]{}, fmt.Errorf("%w: result: %v", ErrMalformedFrame, err)
	}
	return resp, nil
}
