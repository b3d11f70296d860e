package diagnostics

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSSinkSendSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	sink := &sqsSink{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   client,
		log:      noopLogger{},
	}

	err := sink.Send(context.Background(), Report{ID: "r1", Operation: "addHero"})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["operation"]
	if !ok || aws.ToString(attr.StringValue) != "addHero" {
		t.Fatalf("operation attribute missing or wrong: %#v", attr)
	}
	if aws.ToString(attr.DataType) != "String" {
		t.Fatalf("DataType should be String, got %#v", attr.DataType)
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"operation":"addHero"`) {
		t.Fatalf("MessageBody missing operation: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSSinkSendError(t *testing.T) {
	sink := &sqsSink{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   &fakeSQSClient{err: errors.New("boom")},
		log:      noopLogger{},
	}

	if err := sink.Send(context.Background(), Report{ID: "r1"}); err == nil {
		t.Fatalf("expected error from Send")
	}
}

func TestSQSSinkFIFOQueueDedupesOnReportID(t *testing.T) {
	client := &fakeSQSClient{}
	sink := &sqsSink{
		id:       "queue",
		queueURL: "https://sqs.eu-west-1.amazonaws.com/123/hero-errors.fifo",
		client:   client,
		log:      noopLogger{},
	}

	rep := Report{ID: "r7", Service: "hero-data-service", Operation: "updateHero"}
	if err := sink.Send(context.Background(), rep); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if got := aws.ToString(client.input.MessageDeduplicationId); got != "r7" {
		t.Fatalf("MessageDeduplicationId = %q", got)
	}
	if got := aws.ToString(client.input.MessageGroupId); got != "hero-data-service" {
		t.Fatalf("MessageGroupId = %q", got)
	}
	for _, key := range []string{"report_id", "service", "operation"} {
		if _, ok := client.input.MessageAttributes[key]; !ok {
			t.Fatalf("attribute %q missing: %#v", key, client.input.MessageAttributes)
		}
	}
}

func TestSQSSinkStandardQueueHasNoGroup(t *testing.T) {
	client := &fakeSQSClient{}
	sink := &sqsSink{id: "queue", queueURL: "https://example.com/queue", client: client, log: noopLogger{}}

	if err := sink.Send(context.Background(), Report{ID: "r1", Operation: "addHero"}); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if client.input.MessageGroupId != nil || client.input.MessageDeduplicationId != nil {
		t.Fatalf("standard queues must not carry FIFO fields: %#v", client.input)
	}
	if _, ok := client.input.MessageAttributes["service"]; ok {
		t.Fatalf("empty service must not become an attribute")
	}
}

func TestSNSSinkSendSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	sink := &snsSink{
		id:       "topic",
		topicARN: "arn:aws:sns:::topic",
		client:   client,
		log:      noopLogger{},
	}

	if err := sink.Send(context.Background(), Report{ID: "r1", Operation: "deleteHero"}); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::topic" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["operation"]
	if !ok || aws.ToString(attr.StringValue) != "deleteHero" {
		t.Fatalf("operation attribute missing or wrong: %#v", attr)
	}
	if got := aws.ToString(client.input.Subject); got != "hero api failure: deleteHero" {
		t.Fatalf("Subject = %q", got)
	}
	if !strings.Contains(aws.ToString(client.input.Message), `"id":"r1"`) {
		t.Fatalf("Message missing report id: %s", aws.ToString(client.input.Message))
	}
}

func TestSNSSinkSendError(t *testing.T) {
	sink := &snsSink{
		id:       "topic",
		topicARN: "arn:aws:sns:::topic",
		client:   &fakeSNSClient{err: errors.New("boom")},
		log:      noopLogger{},
	}

	if err := sink.Send(context.Background(), Report{}); err == nil {
		t.Fatalf("expected error from Send")
	}
}

func TestLoadAWSConfigUsesStaticCredentials(t *testing.T) {
	cfg, err := loadAWSConfig(context.Background(), "eu-west-1", &AWSCredentials{
		AccessKeyID:     "AKID",
		SecretAccessKey: "SECRET",
	})
	if err != nil {
		t.Fatalf("loadAWSConfig: %v", err)
	}
	if cfg.Region != "eu-west-1" {
		t.Fatalf("unexpected region %q", cfg.Region)
	}
	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if creds.AccessKeyID != "AKID" {
		t.Fatalf("unexpected access key %q", creds.AccessKeyID)
	}
}
