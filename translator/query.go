package translator

import (
	"fmt"
)

// MapQuery merges single and multi valued query parameters. A key with more
// than one value is replaced by indexed keys "key[0]", "key[1]", ... in value
// order.
func MapQuery(single map[string]string, multi map[string][]string) map[string]string {
	params := make(map[string]string, len(single))

	for k, v := range single {
		params[k] = v
	}

	for k, values := range multi {
		switch len(values) {
		case 0:
			continue
		case 1:
			if _, ok := params[k]; !ok {
				params[k] = values[0]
			}
			continue
		}

		delete(params, k)
		for i, v := range values {
			params[fmt.Sprintf("%s[%d]", k, i)] = v
		}
	}

	return params
}
