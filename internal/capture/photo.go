// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package capture

import (
	"context"
	"sync"
)

// photoAdapter runs a single classification pass and emits the ranked
// detections. When the classifier is unavailable or returns nothing, the
// canned demo set is emitted with the fallback flag raised.
type photoAdapter struct {
	classifier Classifier

	cancel     context.CancelFunc
	cancelOnce sync.Once
}

func NewPhotoAdapter(classifier Classifier) Adapter {
	return &photoAdapter{classifier: classifier}
}

func (a *photoAdapter) Method() Method { return MethodPhoto }

func (a *photoAdapter) Start(ctx context.Context) (<-chan Event, error) {
	ctx, a.cancel = context.WithCancel(ctx)
	events := make(chan Event, 1)

	go func() {
		defer close(events)

		scored, err := a.classifier.Classify(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil || len(scored) == 0 {
			events <- Event{Detections: DemoDetections(), Fallback: true}
			return
		}

		events <- Event{Detections: RankDetections(scored)}
	}()

	return events, nil
}

func (a *photoAdapter) Cancel() {
	a.cancelOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		_ = a.classifier.Close()
	})
}
