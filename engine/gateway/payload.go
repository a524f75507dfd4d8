package gateway

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

const (
	roleUser   = "user"
	roleSystem = "system"
)

// Message is the system message the gateway prepends.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response is the body of a successful request. Caller messages are echoed
// as received.
type Response struct {
	Messages []json.RawMessage `json:"messages"`
}

// payload is a parsed request body.
type payload struct {
	messages []json.RawMessage
	// content of the last user message; empty when it is not a string
	content string
	found   bool
}

// parsePayload extracts the message list and the last user message from
// body. A non-object body or a non-array messages field has no messages.
// Repeated keys resolve to their last value.
func parsePayload(body []byte) (payload, error) {
	if !gjson.ValidBytes(body) {
		return payload{}, ErrInvalidJSON
	}
	var p payload
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return p, nil
	}
	list := lastField(root, "messages")
	if !list.IsArray() {
		return p, nil
	}
	list.ForEach(func(_, m gjson.Result) bool {
		p.messages = append(p.messages, json.RawMessage(m.Raw))
		if !m.IsObject() {
			return true
		}
		role := lastField(m, "role")
		if role.Type == gjson.String && role.Str == roleUser {
			p.found = true
			p.content = ""
			if c := lastField(m, "content"); c.Type == gjson.String {
				p.content = c.Str
			}
		}
		return true
	})
	return p, nil
}

// lastField returns the last value stored under key in obj. gjson's Get
// would return the first.
func lastField(obj gjson.Result, key string) gjson.Result {
	var out gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			out = v
		}
		return true
	})
	return out
}

// withSystem prepends a system message to messages.
func withSystem(content string, messages []json.RawMessage) (Response, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Message{Role: roleSystem, Content: content}); err != nil {
		return Response{}, err
	}
	sys := json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n"))
	out := make([]json.RawMessage, 0, len(messages)+1)
	out = append(out, sys)
	out = append(out, messages...)
	return Response{Messages: out}, nil
}
