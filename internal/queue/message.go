package queue

import "encoding/json"

// MessageVersion is the current schema version of Message.
const MessageVersion = 1

// Message announces a fully stored submission to downstream consumers.
type Message struct {
	Namespace    string   `json:"namespace"`
	BusinessName string   `json:"businessName"`
	Files        []string `json:"files"`
	RequestID    string   `json:"requestId"`
	SubmittedAt  string   `json:"submittedAt"`
	Version      int      `json:"version"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
