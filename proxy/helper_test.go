package proxy

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
)

func testHandler(context *RouteContext) (events.APIGatewayProxyResponse, error) {
	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

func testEvent(method HttpMethod, path string) Event {
	return Event{
		APIGatewayProxyRequest: events.APIGatewayProxyRequest{
			HTTPMethod: method.String(),
			Path:       path,
			Headers:    map[string]string{},
		},
	}
}

func dummyEvent(category string) Event {
	file := fmt.Sprintf("testdata/events/%s.json", category)

	content, err := os.ReadFile(file)
	if err != nil {
		log.Fatal(err)
	}

	event := Event{}
	if err := json.Unmarshal(content, &event); err != nil {
		log.Fatal(err)
	}

	return event
}
