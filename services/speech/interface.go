package speech

import "context"

// RecognitionResult is one recognition event. Interim results carry partial
// transcripts; a final result closes the utterance.
type RecognitionResult struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	IsFinal    bool    `json:"isFinal"`
}

// SynthesisRequest describes one utterance to speak.
type SynthesisRequest struct {
	Text   string  `json:"text"`
	Rate   float64 `json:"rate,omitempty"`
	Pitch  float64 `json:"pitch,omitempty"`
	Volume float64 `json:"volume,omitempty"`
	Voice  string  `json:"voice,omitempty"`
}

// Recognizer is the speech-recognition capability. StartListening arms the
// callbacks and reports whether capture began; IsSupported gates callers on
// capability.
type Recognizer interface {
	StartListening(onResult func(RecognitionResult), onError func(string)) bool
	StopListening()
	IsSupported() bool
}

// Synthesizer is the speech-output capability. Speak returns once the
// utterance completes, or an error on failure.
type Synthesizer interface {
	Speak(ctx context.Context, req SynthesisRequest) error
}
