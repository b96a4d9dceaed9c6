package ports

import (
	"context"

	"github.com/bnema/emergent-chefs/internal/domain"
)

type GenerationRequest struct {
	AgentName          string
	Course             string
	SystemInstructions string
	Context            []domain.Message
	Prompt             string
	Model              string
	Temperature        float64
	MaxTokens          int
}

// Generator turns a prompt into text. Implementations wrap their failures
// with the domain generator errors where they can classify them.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}
