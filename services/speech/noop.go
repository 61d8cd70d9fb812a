package speech

import (
	"context"

	"lanspeech/utils"

	"go.uber.org/zap"
)

// NoopSynthesizer satisfies Synthesizer where audio delivery belongs to the
// presentation layer; the server only records that an utterance was requested.
type NoopSynthesizer struct{}

func (NoopSynthesizer) Speak(ctx context.Context, req SynthesisRequest) error {
	utils.GetLogger().Debug("speech synthesis requested", zap.Int("textLen", len(req.Text)))
	return nil
}
