package translator

import (
	"bytes"
	"context"

	"github.com/prognoshealth/apigwtranslator/logging"
	"github.com/prognoshealth/apigwtranslator/transport"
)

// RetryPolicy re-issues a request once with Param renamed to NewParam when a
// request to Path with Param set comes back empty.
type RetryPolicy struct {
	Path     string `json:"path" toml:"path" validate:"required,startswith=/"`
	Param    string `json:"param" toml:"param" validate:"required"`
	NewParam string `json:"new_param" toml:"new_param" validate:"required,nefield=Param"`
}

// Applies returns true when resp is an empty 2xx response for a request the
// policy covers. Passed through 4xx responses never apply.
func (p *RetryPolicy) Applies(req *transport.Request, resp *transport.Response) bool {
	if !transport.AcceptSuccess(resp.Status) {
		return false
	}

	if req.URL != p.Path {
		return false
	}

	if _, ok := req.Query[p.Param]; !ok {
		return false
	}

	return IsEmpty(resp.Body)
}

// Apply returns resp unless the policy applies, in which case the renamed
// request is sent and its outcome returned as final.
func (p *RetryPolicy) Apply(ctx context.Context, t transport.Transport, req *transport.Request, resp *transport.Response, logger logging.ServiceLogger) (*transport.Response, error) {
	if !p.Applies(req, resp) {
		return resp, nil
	}

	retry := req.Clone()
	retry.Query[p.NewParam] = retry.Query[p.Param]
	delete(retry.Query, p.Param)

	logger.Info().
		Str("path", req.URL).
		Str("param", p.Param).
		Str("new_param", p.NewParam).
		Msg("empty response, retrying with renamed parameter")

	return t.Do(ctx, retry)
}

// IsEmpty returns true for a blank body or a JSON null, empty array or empty
// object.
func IsEmpty(body []byte) bool {
	switch string(bytes.TrimSpace(body)) {
	case "", "null", "[]", "{}":
		return true
	}

	return false
}
