package translator

import (
	"strings"
)

// copyHeaders merges single and multi valued headers keeping key case as
// received. Single valued headers win.
func copyHeaders(single map[string]string, multi map[string][]string) map[string]string {
	headers := make(map[string]string, len(single))

	for k, values := range multi {
		if len(values) > 0 {
			headers[k] = strings.Join(values, ",")
		}
	}

	for k, v := range single {
		headers[k] = v
	}

	return headers
}

// setHeader replaces every case variant of name with value.
func setHeader(headers map[string]string, name string, value string) {
	for k := range headers {
		if strings.EqualFold(k, name) {
			delete(headers, k)
		}
	}

	headers[name] = value
}
