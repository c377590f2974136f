package models

import (
	"bytes"
	"encoding/json"
)

// StatusPayload is the inbound webhook document. Only the status field is read.
type StatusPayload struct {
	Status json.RawMessage `json:"status"`
}

// HasStatus reports whether the payload carried a non-null status field.
func (p StatusPayload) HasStatus() bool {
	return len(p.Status) > 0 && !bytes.Equal(p.Status, []byte("null"))
}

// Text renders the status as notification text. Strings are used verbatim, a missing or null
// status yields an empty text and any other JSON value is rendered as its compact JSON form.
func (p StatusPayload) Text() string {
	if !p.HasStatus() {
		return ""
	}
	var s string
	if err := json.Unmarshal(p.Status, &s); err == nil {
		return s
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, p.Status); err != nil {
		return string(p.Status)
	}
	return compact.String()
}

// Message is the outbound notification sent to the incoming webhook.
type Message struct {
	Text string
}

// MessageBody is the JSON body returned to the inbound caller.
type MessageBody struct {
	Message string `json:"message"`
}
