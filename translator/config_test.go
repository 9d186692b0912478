package translator

import (
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/stretchr/testify/assert"

	"github.com/prognoshealth/apigwtranslator/formdata"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		valid bool
	}{
		{"default", DefaultConfig(), true},
		{"zero value", Config{}, true},
		{"indexed map", Config{Multipart: formdata.IndexedMap}, true},
		{"flattened fields", Config{Multipart: formdata.FlattenedFields}, true},
		{"unknown representation", Config{Multipart: "xml"}, false},
		{"retry", Config{Retry: &RetryPolicy{Path: "/accounts", Param: "accountId", NewParam: "externalId"}}, true},
		{"retry relative path", Config{Retry: &RetryPolicy{Path: "accounts", Param: "accountId", NewParam: "externalId"}}, false},
		{"retry missing param", Config{Retry: &RetryPolicy{Path: "/accounts", NewParam: "externalId"}}, false},
		{"retry same param", Config{Retry: &RetryPolicy{Path: "/accounts", Param: "accountId", NewParam: "accountId"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestConfig_statusPolicy(t *testing.T) {
	passthrough := DefaultConfig().statusPolicy()
	assert.True(t, passthrough(http.StatusOK))
	assert.True(t, passthrough(http.StatusNotFound))
	assert.False(t, passthrough(http.StatusInternalServerError))

	assert.True(t, Config{}.statusPolicy()(http.StatusConflict))

	strict := Config{ClientErrorPassthrough: aws.Bool(false)}.statusPolicy()
	assert.True(t, strict(http.StatusNoContent))
	assert.False(t, strict(http.StatusBadRequest))
}
