package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// bedrockAnthropicVersion is the message-format version Bedrock requires for
// Anthropic models.
const bedrockAnthropicVersion = "bedrock-2023-05-31"

// bedrockInvoker is the slice of *bedrockruntime.Client this client calls.
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// bedrockClient is the Completer backed by an Anthropic model hosted on AWS
// Bedrock. Credentials come from the default AWS chain.
type bedrockClient struct {
	rt      bedrockInvoker
	modelID string
}

// NewBedrockClient loads the default AWS config for region and returns a
// Completer for modelID, e.g. "anthropic.claude-3-sonnet-20240229-v1:0".
func NewBedrockClient(ctx context.Context, region, modelID string) (Completer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("bedrock: load aws config: %w", err)
	}
	return newBedrockClient(bedrockruntime.NewFromConfig(cfg), modelID), nil
}

func newBedrockClient(rt bedrockInvoker, modelID string) *bedrockClient {
	return &bedrockClient{rt: rt, modelID: modelID}
}

func (c *bedrockClient) Name() string { return "bedrock" }

// Complete invokes the model once and returns the first text block.
func (c *bedrockClient) Complete(ctx context.Context, r Request) (string, error) {
	reqBody := newAnthropicRequest(r)
	reqBody.AnthropicVersion = bedrockAnthropicVersion

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("bedrock: marshal request: %w", err)
	}

	out, err := c.rt.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock: invoke model: %w", err)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(out.Body, &parsed); err != nil {
		return "", fmt.Errorf("bedrock: unmarshal response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("bedrock: model error %s: %s", parsed.Error.Type, parsed.Error.Message)
	}

	text, ok := parsed.firstText()
	if !ok {
		return "", fmt.Errorf("bedrock: no text content in response")
	}
	return text, nil
}
