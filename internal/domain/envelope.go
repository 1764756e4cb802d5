package domain

import "encoding/json"

// MediaTypeJSON is the media type of every envelope body.
const MediaTypeJSON = "application/json"

// Envelope is the uniform success wrapper handed to the outer transport.
type Envelope struct {
	// Identifier is the identifier string the caller resolved.
	Identifier string `json:"identifier"`

	// MediaType is always MediaTypeJSON.
	MediaType string `json:"mediaType"`

	// Body is the serialized upstream payload.
	Body json.RawMessage `json:"body"`
}

// Wrap pairs a successful upstream payload with its originating identifier.
// It is deterministic and side-effect free.
func Wrap(identifier string, payload []byte) *Envelope {
	return &Envelope{
		Identifier: identifier,
		MediaType:  MediaTypeJSON,
		Body:       json.RawMessage(payload),
	}
}
