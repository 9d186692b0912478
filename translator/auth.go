package translator

import (
	"github.com/prognoshealth/apigwtranslator/proxy"
	"github.com/prognoshealth/apigwtranslator/transport"
)

// InjectAuth applies auth to req. Basic auth becomes request credentials and
// bearer auth becomes an Authorization header. A nil auth leaves req as is.
func InjectAuth(req *transport.Request, auth proxy.Auth) {
	switch a := auth.(type) {
	case proxy.BasicAuth:
		req.Credentials = &transport.Credentials{Username: a.User, Password: a.Password}
	case proxy.BearerAuth:
		setHeader(req.Headers, "Authorization", "Bearer "+a.Token)
	}
}
