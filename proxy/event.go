package proxy

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// Event is an api gateway (rest) proxy request together with the operation
// context the gateway's routing layer attached to it.
//
// The operation context is read from requestContext.apiGateway.operationContext
// when the event is decoded from JSON.
type Event struct {
	events.APIGatewayProxyRequest
	OperationContext *OperationContext `json:"-"`
}

// OperationContext carries the per invocation backend configuration.
type OperationContext struct {
	// Host is the backend base url. Empty means the transport default.
	Host string
	// Auth is nil when no outbound auth should be injected.
	Auth Auth
	// Include is the response field inclusion list. Nil means no projection.
	Include []string
}

// Auth is either BasicAuth or BearerAuth.
type Auth interface {
	isAuth()
}

// BasicAuth injects basic credentials into the outbound request.
type BasicAuth struct {
	User     string
	Password string
}

// BearerAuth injects an Authorization: Bearer header into the outbound request.
type BearerAuth struct {
	Token string
}

func (BasicAuth) isAuth()  {}
func (BearerAuth) isAuth() {}

type eventEnvelope struct {
	RequestContext struct {
		APIGateway *struct {
			OperationContext *OperationContext `json:"operationContext"`
		} `json:"apiGateway"`
	} `json:"requestContext"`
}

// UnmarshalJSON decodes the proxy request and its operation context.
func (e *Event) UnmarshalJSON(b []byte) error {
	if err := json.Unmarshal(b, &e.APIGatewayProxyRequest); err != nil {
		return errors.Wrap(err, "failed decoding api gateway proxy request")
	}

	envelope := eventEnvelope{}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return errors.Wrap(err, "failed decoding operation context")
	}

	e.OperationContext = nil
	if envelope.RequestContext.APIGateway != nil {
		e.OperationContext = envelope.RequestContext.APIGateway.OperationContext
	}

	return nil
}

type operationContextJSON struct {
	Host    string          `json:"host"`
	Auth    json.RawMessage `json:"auth,omitempty"`
	Include []string        `json:"include,omitempty"`
}

type authJSON struct {
	Type     string `json:"type"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
	Token    string `json:"token,omitempty"`
}

// UnmarshalJSON decodes {"host": .., "auth": {"type": "basic"|"bearer", ..}, "include": [..]}.
func (oc *OperationContext) UnmarshalJSON(b []byte) error {
	raw := operationContextJSON{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	auth, err := decodeAuth(raw.Auth)
	if err != nil {
		return err
	}

	oc.Host = raw.Host
	oc.Auth = auth
	oc.Include = raw.Include

	return nil
}

// MarshalJSON is the inverse of UnmarshalJSON.
func (oc OperationContext) MarshalJSON() ([]byte, error) {
	raw := operationContextJSON{Host: oc.Host, Include: oc.Include}

	var a *authJSON
	switch auth := oc.Auth.(type) {
	case BasicAuth:
		a = &authJSON{Type: "basic", User: auth.User, Password: auth.Password}
	case BearerAuth:
		a = &authJSON{Type: "bearer", Token: auth.Token}
	}

	if a != nil {
		b, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		raw.Auth = b
	}

	return json.Marshal(raw)
}

func decodeAuth(b json.RawMessage) (Auth, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}

	a := authJSON{}
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, errors.Wrap(err, "failed decoding auth descriptor")
	}

	switch strings.ToLower(a.Type) {
	case "basic":
		return BasicAuth{User: a.User, Password: a.Password}, nil
	case "bearer":
		return BearerAuth{Token: a.Token}, nil
	}

	return nil, errors.Errorf("unknown auth descriptor type '%s'", a.Type)
}

// DecodedBody returns the event body, base64 decoded when the event flags it
// as encoded.
func (e *Event) DecodedBody() ([]byte, error) {
	if e.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(e.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to decode request body for %s %s", e.HTTPMethod, e.Path)
		}

		return b, nil
	}

	return []byte(e.Body), nil
}

// Header returns the value of the named header ignoring case. Multi value
// headers are consulted when the single value header is missing.
func (e *Event) Header(name string) string {
	for k, v := range e.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}

	for k, v := range e.MultiValueHeaders {
		if strings.EqualFold(k, name) && len(v) > 0 {
			return v[0]
		}
	}

	return ""
}
