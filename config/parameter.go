package config

import (
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/pkg/errors"
)

// ParameterSource loads JSON settings from an SSM parameter. SecureString
// parameters are decrypted.
type ParameterSource struct {
	Name   string
	Region string

	svcFunc func(client.ConfigProvider) ssmiface.SSMAPI
}

// NewParameterSource returns a source for the named parameter in the region
// taken from AWS_REGION.
func NewParameterSource(name string) *ParameterSource {
	return &ParameterSource{
		Name:   name,
		Region: os.Getenv("AWS_REGION"),
	}
}

// svc is used internally to assist stubs on ssm for testing
func (p *ParameterSource) svc(c client.ConfigProvider) ssmiface.SSMAPI {
	if p.svcFunc != nil {
		return p.svcFunc(c)
	}

	return ssm.New(c)
}

// Load fetches the parameter and decodes its value with FromJSON.
func (p *ParameterSource) Load() (Settings, error) {
	cfg := &aws.Config{}
	if p.Region != "" {
		cfg.Region = aws.String(p.Region)
	}

	s, err := session.NewSession(cfg)
	if err != nil {
		return Settings{}, errors.Wrap(err, "failed getting session")
	}

	out, err := p.svc(s).GetParameter(&ssm.GetParameterInput{
		Name:           aws.String(p.Name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return Settings{}, errors.Wrapf(err, "failed getting parameter %s", p.Name)
	}

	if out.Parameter == nil || out.Parameter.Value == nil {
		return Settings{}, errors.Errorf("parameter %s has no value", p.Name)
	}

	settings, err := FromJSON([]byte(aws.StringValue(out.Parameter.Value)))
	if err != nil {
		return Settings{}, errors.Wrapf(err, "failed loading parameter %s", p.Name)
	}

	return settings, nil
}
