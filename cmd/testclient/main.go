// Command testclient exercises a running transcription record service end
// to end: it ingests a sample transcription, queries it back by
// participant, attaches an object reference, and fetches the final record.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "service base URL")
	participant := flag.String("participant", "alice", "participantId to use")
	flag.Parse()

	client := resty.New().SetBaseURL(*addr).SetTimeout(10 * time.Second)
	callID := "call-" + uuid.NewString()

	// 1. Ingest via the webhook.
	resp, err := client.R().
		SetBody(map[string]any{
			"eventType":     "transcription.completed",
			"callId":        callID,
			"participantId": *participant,
			"text":          "hello from the test client",
			"timestamp":     time.Now().UnixMilli(),
		}).
		Post("/v1/webhooks/transcription")
	must(err)
	fmt.Printf("ingest: %s %s\n", resp.Status(), resp.Body())

	// 2. Query by participant.
	resp, err = client.R().
		SetQueryParam("participant", *participant).
		Get("/v1/transcriptions")
	must(err)
	fmt.Printf("query:  %s %s\n", resp.Status(), resp.Body())

	// 3. Attach an object reference.
	resp, err = client.R().
		SetBody(map[string]string{
			"callId": callID,
			"s3Url":  fmt.Sprintf("s3://recordings/%s.wav", callID),
		}).
		Post("/v1/transcriptions/attachment")
	must(err)
	fmt.Printf("attach: %s %s\n", resp.Status(), resp.Body())

	// 4. Fetch the final record.
	resp, err = client.R().Get("/v1/transcriptions/" + callID)
	must(err)
	fmt.Printf("get:    %s %s\n", resp.Status(), resp.Body())
}

func must(err error) {
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
}
