package queue

import (
	"encoding/json"
	"testing"
)

func TestEncodeMessageFieldNames(t *testing.T) {
	msg := Message{
		Namespace:    "2024-01-05_13-02-09_Acme_Co",
		BusinessName: "Acme Co",
		Files:        []string{"intake_answers.txt", "front.jpg"},
		RequestID:    "request-456",
		SubmittedAt:  "2024-01-05T13:02:09Z",
		Version:      MessageVersion,
	}

	payload, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	for _, key := range []string{"namespace", "businessName", "files", "requestId", "submittedAt", "version"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing key %s in %s", key, payload)
		}
	}

	got, err := DecodeMessage(payload)
	if err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if got.Namespace != msg.Namespace || len(got.Files) != 2 {
		t.Fatalf("unexpected decode: %+v", got)
	}
}
