package proxy

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// HttpMethod is an enum of the Http Methods an api gateway event can carry.
type HttpMethod int

const (
	GET HttpMethod = iota
	HEAD
	POST
	PUT
	DELETE
	OPTIONS
	PATCH
)

var httpMethodNames = [...]string{
	GET:     "GET",
	HEAD:    "HEAD",
	POST:    "POST",
	PUT:     "PUT",
	DELETE:  "DELETE",
	OPTIONS: "OPTIONS",
	PATCH:   "PATCH",
}

// String returns the upper case wire name of the method.
func (m HttpMethod) String() string {
	if m < 0 || int(m) >= len(httpMethodNames) {
		return fmt.Sprintf("HttpMethod(%d)", int(m))
	}

	return httpMethodNames[m]
}

// ParseHttpMethod returns the HttpMethod named by s. Matching ignores case.
func ParseHttpMethod(s string) (HttpMethod, error) {
	for i, name := range httpMethodNames {
		if strings.EqualFold(name, s) {
			return HttpMethod(i), nil
		}
	}

	return 0, errors.Errorf("unsupported http method '%s'", s)
}
