package lambdautils

import (
	"context"
	"strconv"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// LambdaMetaData stored details about the current lambda context.
type LambdaMetaData struct {
	FunctionName    string
	FunctionVersion string
	LogGroupName    string
	LogStreamName   string
	MemoryLimitInMB int
	Context         *lambdacontext.LambdaContext
}

// GetLambdaMetaData returns MetaData extracted from the current lambda context.
func GetLambdaMetaData(ctx context.Context) LambdaMetaData {
	lm := LambdaMetaData{
		FunctionName:    lambdacontext.FunctionName,
		FunctionVersion: lambdacontext.FunctionVersion,
		LogGroupName:    lambdacontext.LogGroupName,
		LogStreamName:   lambdacontext.LogStreamName,
		MemoryLimitInMB: lambdacontext.MemoryLimitInMB,
	}

	lm.Context, _ = lambdacontext.FromContext(ctx)
	return lm
}

// Fields returns the metadata as log fields. Empty values are left out.
func (lm LambdaMetaData) Fields() map[string]string {
	fields := map[string]string{}

	add := func(k, v string) {
		if v != "" {
			fields[k] = v
		}
	}

	add("function_name", lm.FunctionName)
	add("function_version", lm.FunctionVersion)
	add("log_stream", lm.LogStreamName)
	if lm.MemoryLimitInMB > 0 {
		fields["memory_limit_mb"] = strconv.Itoa(lm.MemoryLimitInMB)
	}

	if lm.Context != nil {
		add("aws_request_id", lm.Context.AwsRequestID)
		add("function_arn", lm.Context.InvokedFunctionArn)
	}

	return fields
}
