// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package capture

import (
	"context"
	"strings"
	"sync"
)

// voiceAdapter accumulates final recognition segments and runs the item
// heuristics once the transcriber's stream ends. Interim segments are
// forwarded as progress events so the UI can show live text, but only
// final segments reach the committed transcript.
type voiceAdapter struct {
	transcriber Transcriber

	cancel     context.CancelFunc
	cancelOnce sync.Once
}

func NewVoiceAdapter(transcriber Transcriber) Adapter {
	return &voiceAdapter{transcriber: transcriber}
}

func (a *voiceAdapter) Method() Method { return MethodVoice }

func (a *voiceAdapter) Start(ctx context.Context) (<-chan Event, error) {
	ctx, a.cancel = context.WithCancel(ctx)

	segments, err := a.transcriber.Segments(ctx)
	if err != nil {
		a.cancel()
		return nil, err
	}

	events := make(chan Event, 1)

	go func() {
		defer close(events)

		var committed strings.Builder
		for segment := range segments {
			if ctx.Err() != nil {
				return
			}
			if !segment.Final {
				events <- Event{Interim: segment.Text}
				continue
			}
			committed.WriteString(segment.Text)
			committed.WriteString(" ")
		}

		if ctx.Err() != nil {
			return
		}

		result, err := ProcessTranscript(committed.String())
		if err != nil {
			events <- Event{Err: ErrTranscriberClosed}
			return
		}

		prefill := PrefillFromVoice(result)
		events <- Event{Prefill: &prefill}
	}()

	return events, nil
}

func (a *voiceAdapter) Cancel() {
	a.cancelOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		_ = a.transcriber.Close()
	})
}
