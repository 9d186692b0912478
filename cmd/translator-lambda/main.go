// package main loads the translator settings from the environment and serves
// api gateway proxy events through the lambda runtime.
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/prognoshealth/apigwtranslator/config"
	"github.com/prognoshealth/apigwtranslator/gateway"
	"github.com/prognoshealth/apigwtranslator/logging"
)

var (
	settings      config.Settings
	serviceLogger logging.ServiceLogger
)

func init() {
	var err error

	settings, err = config.FromEnv()
	if err != nil {
		panic(err)
	}

	serviceLogger, err = logging.New(settings.LogLevel)
	if err != nil {
		panic(err)
	}
}

func main() {
	serviceLogger.Debug().Interface("settings", settings).Msg("loaded settings")

	gw, err := gateway.NewFromSettings(settings, serviceLogger)
	if err != nil {
		serviceLogger.Panic().Err(err).Msg("failed building gateway")
	}

	lambda.Start(gw.Invoke)
}
