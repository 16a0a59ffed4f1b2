package serialx

import (
	"context"

	"github.com/hengadev/serialx/internal/batch"
)

type (
	// BatchOptions configures SerializeAll.
	BatchOptions = batch.Options
	// BatchResult holds the documents and failures of a SerializeAll call.
	BatchResult = batch.Result
	// BatchError is the failure of one item of a batch.
	BatchError = batch.Error
)

// SerializeAll serializes objects concurrently. Outputs keep the input order
// and every item goes through the observability hooks like SerializeContext.
func (s *Serializer) SerializeAll(ctx context.Context, objects []any, opts *BatchOptions) (*BatchResult, error) {
	result, err := batch.Run(ctx, s.SerializeContext, objects, opts)
	if err != nil {
		s.logger.ErrorContext(ctx, "batch serialization stopped",
			"total", result.Total,
			"failed", result.Failed,
			"skipped", result.Skipped,
			"error", err)
		return result, err
	}
	s.logger.DebugContext(ctx, "batch serialization completed",
		"total", result.Total,
		"failed", result.Failed,
		"duration", result.Duration)
	return result, nil
}
