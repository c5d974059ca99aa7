package response

import (
	"encoding/json"
	"errors"
)

// BodyKind identifies the variant of a Body.
type BodyKind uint8

const (
	BodyJSON BodyKind = iota + 1
	BodyHTML
	BodyText
	BodyCustom
)

// String returns the lowercase name of the body kind.
func (k BodyKind) String() string {
	switch k {
	case BodyJSON:
		return "json"
	case BodyHTML:
		return "html"
	case BodyText:
		return "text"
	case BodyCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Body is response content that has not been serialized yet.
// The set of variants is closed: values are created with JSON, HTML, Text,
// Custom and CustomSerializer. Serialization never mutates the payload.
type Body interface {
	Kind() BodyKind
	serialize() ([]byte, error)
}

// Serializer renders a custom body to text.
type Serializer interface {
	Serialize() (string, error)
}

// SerializerFunc adapts a plain function to the Serializer interface.
type SerializerFunc func() (string, error)

// Serialize calls f.
func (f SerializerFunc) Serialize() (string, error) {
	return f()
}

type jsonBody struct{ v any }

// JSON creates a structured-data body encoded as JSON.
func JSON(v any) Body {
	return jsonBody{v: v}
}

func (jsonBody) Kind() BodyKind { return BodyJSON }

func (b jsonBody) serialize() ([]byte, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return nil, &SerializationError{Kind: ErrInvalidObject, Err: err}
	}
	return data, nil
}

type htmlBody string

// HTML creates a markup body. Its text is sent as is.
func HTML(s string) Body {
	return htmlBody(s)
}

func (htmlBody) Kind() BodyKind { return BodyHTML }

func (b htmlBody) serialize() ([]byte, error) {
	return []byte(b), nil
}

type textBody string

// Text creates a plain-text body. Its text is sent as is.
func Text(s string) Body {
	return textBody(s)
}

func (textBody) Kind() BodyKind { return BodyText }

func (b textBody) serialize() ([]byte, error) {
	return []byte(b), nil
}

type customBody struct{ s Serializer }

// Custom creates a body rendered by fn. A nil fn or an error returned by fn
// makes the body fail with ErrNotSupported.
func Custom[T any](v T, fn func(T) (string, error)) Body {
	if fn == nil {
		return customBody{}
	}
	return customBody{s: SerializerFunc(func() (string, error) {
		return fn(v)
	})}
}

// CustomSerializer creates a body rendered by s.
func CustomSerializer(s Serializer) Body {
	return customBody{s: s}
}

func (customBody) Kind() BodyKind { return BodyCustom }

func (b customBody) serialize() ([]byte, error) {
	if b.s == nil {
		return nil, &SerializationError{Kind: ErrNotSupported}
	}
	text, err := b.s.Serialize()
	if err != nil {
		var serr *SerializationError
		if errors.As(err, &serr) {
			return nil, err
		}
		return nil, &SerializationError{Kind: ErrNotSupported, Err: err}
	}
	return []byte(text), nil
}
