package config

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prognoshealth/apigwtranslator/formdata"
)

type mockSSMClient struct {
	ssmiface.SSMAPI

	value *string
	err   error
	input *ssm.GetParameterInput
}

func (m *mockSSMClient) GetParameter(input *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
	m.input = input

	if m.err != nil {
		return nil, m.err
	}

	return &ssm.GetParameterOutput{Parameter: &ssm.Parameter{Name: input.Name, Value: m.value}}, nil
}

func mockedSource(m *mockSSMClient) *ParameterSource {
	p := &ParameterSource{Name: "/translator/settings", Region: "us-east-1"}
	p.svcFunc = func(client.ConfigProvider) ssmiface.SSMAPI { return m }

	return p
}

func TestNewParameterSource(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")

	p := NewParameterSource("/translator/settings")

	assert.Equal(t, "/translator/settings", p.Name)
	assert.Equal(t, "eu-west-1", p.Region)
}

func TestParameterSource_Load(t *testing.T) {
	m := &mockSSMClient{value: aws.String(`{"log_level": "DEBUG", "default": {"multipart": "flattened-fields"}}`)}

	s, err := mockedSource(m).Load()
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", s.LogLevel)
	assert.Equal(t, formdata.FlattenedFields, s.Default.Multipart)

	assert.Equal(t, "/translator/settings", aws.StringValue(m.input.Name))
	assert.True(t, aws.BoolValue(m.input.WithDecryption))
}

func TestParameterSource_Load_error(t *testing.T) {
	m := &mockSSMClient{err: awserr.New(ssm.ErrCodeParameterNotFound, "not found", nil)}

	_, err := mockedSource(m).Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed getting parameter /translator/settings")
}

func TestParameterSource_Load_noValue(t *testing.T) {
	_, err := mockedSource(&mockSSMClient{}).Load()
	assert.Error(t, err)
}

func TestParameterSource_Load_invalid(t *testing.T) {
	m := &mockSSMClient{value: aws.String(`{"log_level": "LOUD"}`)}

	_, err := mockedSource(m).Load()
	assert.Error(t, err)
}
