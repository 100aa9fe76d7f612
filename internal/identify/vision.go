package identify

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
)

// OpenAIVisionAnalyzer is a VisionAnalyzer backed by the OpenAI chat
// completions API with an inline image part.
type OpenAIVisionAnalyzer struct {
	client openai.Client
	model  string
}

// NewOpenAIVisionAnalyzer creates OpenAIVisionAnalyzer with given API key
// and model name.
func NewOpenAIVisionAnalyzer(apiKey string, model string) *OpenAIVisionAnalyzer {
	return &OpenAIVisionAnalyzer{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// AnalyzeImage sends the instruction together with the image as a data URI
// and returns the reply text.
func (a *OpenAIVisionAnalyzer) AnalyzeImage(ctx context.Context, instruction string, image []byte, mimeType string) (string, error) {
	completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(instruction),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: DataURI(image, mimeType),
				}),
			}),
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return completion.Choices[0].Message.Content, nil
}
