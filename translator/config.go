package translator

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/prognoshealth/apigwtranslator/formdata"
	"github.com/prognoshealth/apigwtranslator/transport"
)

var validate = validator.New()

// Config selects the pipeline variant a Translator runs.
type Config struct {
	// Multipart is the outbound representation of multipart/form-data bodies.
	Multipart formdata.Representation `json:"multipart" toml:"multipart" validate:"omitempty,oneof=multipart-form indexed-map flattened-fields"`
	// ClientErrorPassthrough returns 4xx backend responses as they are instead
	// of mapping them to a 500. Unset means true.
	ClientErrorPassthrough *bool `json:"client_error_passthrough,omitempty" toml:"client_error_passthrough,omitempty"`
	// Retry is nil when no retry policy is active.
	Retry *RetryPolicy `json:"retry,omitempty" toml:"retry,omitempty" validate:"omitempty"`
}

// DefaultConfig returns multipart-form encoding with 4xx passthrough and no
// retry policy.
func DefaultConfig() Config {
	passthrough := true

	return Config{
		Multipart:              formdata.MultipartForm,
		ClientErrorPassthrough: &passthrough,
	}
}

// Validate checks the config for unknown representations and incomplete retry
// policies.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid translator config")
	}

	return nil
}

func (c Config) statusPolicy() transport.StatusPolicy {
	if c.ClientErrorPassthrough == nil || *c.ClientErrorPassthrough {
		return transport.AcceptBelowServerError
	}

	return transport.AcceptSuccess
}
