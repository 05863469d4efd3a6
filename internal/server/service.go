package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/statement-analyzer/internal/entity"
	"github.com/joseph-ayodele/statement-analyzer/internal/llm"
)

// Extractor turns uploaded file bytes into tabular text.
type Extractor interface {
	Extract(ctx context.Context, data []byte, contentType, password string) (string, error)
}

// ModelClient retrieves a raw completion for a prompt.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service runs the analyze pipeline: extract, build prompt, call the model,
// normalize the completion. The first failing stage is terminal.
type Service struct {
	extractor Extractor
	model     ModelClient
	logger    *slog.Logger
}

func NewService(extractor Extractor, model ModelClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{extractor: extractor, model: model, logger: logger}
}

// AnalyzeStatement processes one uploaded statement and returns its
// transactions. ctx carries the request lifetime; a disconnected caller
// abandons the in-flight model call.
func (s *Service) AnalyzeStatement(ctx context.Context, data []byte, contentType, password string) ([]entity.Transaction, error) {
	start := time.Now()

	text, err := s.extractor.Extract(ctx, data, contentType, password)
	if err != nil {
		s.logger.Error("analyze.extract.failed", "content_type", contentType, "error", err)
		return nil, err
	}

	prompt := llm.BuildPrompt(text)

	completion, err := s.model.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("analyze.model.failed", "error", err)
		return nil, err
	}

	transactions, err := llm.Normalize(completion, s.logger)
	if err != nil {
		s.logger.Error("analyze.normalize.failed", "error", err)
		return nil, err
	}

	s.logger.Info("analyze.ok",
		"transactions", len(transactions),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return transactions, nil
}
