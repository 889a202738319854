package logging

import (
	"encoding/json"
	"log"
	"time"
)

// Fields is one structured log record. Zero-valued fields are omitted so
// callers only fill in what a given saga step actually knows.
type Fields struct {
	Service   string `json:"service"`
	UserID    int    `json:"user_id,omitempty"`
	OrderID   int    `json:"order_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Step      string `json:"step,omitempty"`
	Status    string `json:"status,omitempty"`
	Message   string `json:"message,omitempty"`
}

func Log(fields Fields) {
	payload := map[string]any{
		"service":   fields.Service,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if fields.UserID != 0 {
		payload["user_id"] = fields.UserID
	}
	if fields.OrderID != 0 {
		payload["order_id"] = fields.OrderID
	}
	if fields.SessionID != "" {
		payload["session_id"] = fields.SessionID
	}
	if fields.Step != "" {
		payload["step"] = fields.Step
	}
	if fields.Status != "" {
		payload["status"] = fields.Status
	}
	if fields.Message != "" {
		payload["message"] = fields.Message
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("{\"service\":%q,\"status\":\"log_error\",\"error\":%q}", fields.Service, err.Error())
		return
	}
	log.Print(string(data))
}
