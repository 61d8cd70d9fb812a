package speech

import (
	"context"
	"fmt"
	"strings"
	"sync"

	speechapi "cloud.google.com/go/speech/apiv1"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

// GoogleRecognizer implements Recognizer over Google Cloud Speech-to-Text for
// audio pushed from the client as LINEAR16 mono WAV. StartListening arms the
// callbacks; each PushAudio call runs one recognition and delivers a final
// result.
type GoogleRecognizer struct {
	credentialsFile string
	language        string

	mu        sync.Mutex
	listening bool
	onResult  func(RecognitionResult)
	onError   func(string)
}

func NewGoogleRecognizer(credentialsFile, language string) *GoogleRecognizer {
	if language == "" {
		language = "en-US"
	}
	return &GoogleRecognizer{credentialsFile: credentialsFile, language: language}
}

// IsSupported reports whether the recognizer has credentials to work with.
func (r *GoogleRecognizer) IsSupported() bool {
	return r.credentialsFile != ""
}

func (r *GoogleRecognizer) StartListening(onResult func(RecognitionResult), onError func(string)) bool {
	if !r.IsSupported() {
		if onError != nil {
			onError("Speech recognition is not available.")
		}
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.listening = true
	r.onResult = onResult
	r.onError = onError
	return true
}

func (r *GoogleRecognizer) StopListening() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listening = false
	r.onResult = nil
	r.onError = nil
}

// PushAudio transcribes one utterance and forwards it to the armed result
// callback as a final result. A no-op when not listening.
func (r *GoogleRecognizer) PushAudio(ctx context.Context, audio []byte, sampleRate int32) error {
	r.mu.Lock()
	listening := r.listening
	onResult := r.onResult
	onError := r.onError
	r.mu.Unlock()

	if !listening {
		return nil
	}

	transcript, confidence, err := r.recognize(ctx, audio, sampleRate)
	if err != nil {
		if onError != nil {
			onError("Speech recognition failed. Please try again.")
		}
		return err
	}

	if transcript == "" {
		if onError != nil {
			onError("No speech detected. Please try speaking again.")
		}
		return nil
	}

	if onResult != nil {
		onResult(RecognitionResult{
			Transcript: transcript,
			Confidence: confidence,
			IsFinal:    true,
		})
	}
	return nil
}

func (r *GoogleRecognizer) recognize(ctx context.Context, audio []byte, sampleRate int32) (string, float64, error) {
	client, err := speechapi.NewClient(ctx, option.WithCredentialsFile(r.credentialsFile))
	if err != nil {
		return "", 0, fmt.Errorf("failed to initialize speech client: %w", err)
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   sampleRate,
			LanguageCode:      r.language,
			AudioChannelCount: 1, // Mono
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audio,
			},
		},
	}

	resp, err := client.Recognize(ctx, req)
	if err != nil {
		return "", 0, fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	var confidence float64
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
			if float64(alt.Confidence) > confidence {
				confidence = float64(alt.Confidence)
			}
		}
	}
	return strings.TrimSpace(transcript.String()), confidence, nil
}
