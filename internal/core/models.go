package core

import (
	"encoding/json"

	"github.com/jellydator/validation"
)

const (
	// StatusOK is reported for every successful run. It is not derived from
	// the upstream response.
	StatusOK = 200

	Message = "AI Script executed successfully from python environment"
)

// Envelope is the single line printed by the report command.
type Envelope struct {
	Response int             `json:"Response"`
	Message  string          `json:"Message"`
	Data     json.RawMessage `json:"Data"`
}

func NewEnvelope(data json.RawMessage) Envelope {
	return Envelope{
		Response: StatusOK,
		Message:  Message,
		Data:     data,
	}
}

func (e Envelope) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Response, validation.Required, validation.In(StatusOK)),
		validation.Field(&e.Message, validation.Required, validation.In(Message)),
		validation.Field(&e.Data, validation.Required),
	)
}
