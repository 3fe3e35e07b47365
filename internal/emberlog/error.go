package emberlog

import (
	"context"
	"errors"
	"fmt"
)

// WrapStage joins a note naming ctx's tagged stage onto err, the same
// way reusee-tai's WrapSpan joins a span note onto an error — so an
// error surfaced from deep inside, say, the resolver still says which
// pipeline stage produced it once it reaches the driver's top-level
// error handling. A ctx with no stage tag returns err unchanged.
func WrapStage(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	stage, ok := stageOf(ctx)
	if !ok {
		return err
	}
	return errors.Join(err, fmt.Errorf("stage: %s", stage))
}
