package entity

import "time"

// TransportResponse is what the transport hands back for any well-formed
// HTTP exchange, successful or not.
type TransportResponse struct {
	StatusCode int
	Body       string
	// Gateway or HTTP error description, empty on 2xx
	ErrorText string
}

// GatewayResult is the flat key/value body returned by the gateway,
// e.g. pspReference=8813...&response=[capture-received]
type GatewayResult map[string]string

// PspReference returns the gateway reference of the payment, if any.
func (r GatewayResult) PspReference() string {
	return r["pspReference"]
}

// PaymentResult is the audit record of one server-to-server call.
type PaymentResult struct {
	Operation    string        `json:"operation" bson:"operation"`
	Reference    string        `json:"reference" bson:"reference"`
	PspReference string        `json:"psp_reference" bson:"psp_reference"`
	Success      bool          `json:"success" bson:"success"`
	Error        string        `json:"error,omitempty" bson:"error"`
	Result       GatewayResult `json:"result,omitempty" bson:"result"`
	RequestID    string        `json:"request_id,omitempty" bson:"request_id"`
	Time         time.Time     `json:"time" bson:"time"`
}

// LogMessage is a log line persisted by the database log sink.
type LogMessage struct {
	Time       time.Time `json:"time" bson:"time"`
	Category   string    `json:"category" bson:"category"`
	Importance string    `json:"importance" bson:"importance"`
	Text       string    `json:"text" bson:"text"`
}

func (m *LogMessage) DataType() string {
	return "log"
}
