package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Token is an opaque correlation id as sent by the parent. It holds the
// compacted JSON text of the id so it can be echoed back verbatim whatever
// its JSON type.
type Token string

// NewToken builds a Token from any JSON-encodable value.
func NewToken(v any) (Token, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode token: %w", err)
	}
	return Token(b), nil
}

// StringToken is NewToken for a string id.
func StringToken(s string) Token {
	b, _ := json.Marshal(s)
	return Token(b)
}

func (t Token) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("null"), nil
	}
	return []byte(t), nil
}

func (t *Token) UnmarshalJSON(b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return errors.New("empty token")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return err
	}
	*t = Token(buf.String())
	return nil
}

func (t Token) String() string {
	return string(t)
}
