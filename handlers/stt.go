package handlers

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	MaxDurationSeconds = 60              // 1 minute maximum
	MaxFileSize        = 5 * 1024 * 1024 // 5MB (conservative buffer)
	AllowedExtension   = ".wav"
)

// audioPusher is satisfied by recognizers that accept pushed audio buffers.
type audioPusher interface {
	PushAudio(ctx context.Context, audio []byte, sampleRate int32) error
}

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}

	var header waveHeader
	buf := bytes.NewReader(data)
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, err
	}

	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a WAV file")
	}
	// Only the canonical 44-byte layout is supported; extended fmt or extra
	// chunks land the wrong bytes in the data tag.
	if string(header.FmtTag[:]) != "fmt " || string(header.DataTag[:]) != "data" {
		return nil, errors.New("unsupported WAV chunk layout")
	}
	return &header, nil
}

func validateWave(header *waveHeader) error {
	if header.AudioFormat != 1 {
		return errors.New("audio must be uncompressed PCM")
	}
	if header.NumChannels != 1 {
		return errors.New("audio must be mono")
	}
	if header.ByteRate == 0 {
		return errors.New("invalid byte rate")
	}
	duration := float64(header.DataSize) / float64(header.ByteRate)
	if duration > MaxDurationSeconds {
		return fmt.Errorf("audio exceeds %d second limit", MaxDurationSeconds)
	}
	return nil
}

// PushAudioHandler accepts a WAV upload, transcribes it and feeds the result
// into the user's practice session as a final recognition event.
func (h *PracticeHandler) PushAudioHandler(c *gin.Context) {
	userID := c.PostForm("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio file is required",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != AllowedExtension {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid file type",
			"details": fmt.Sprintf("expected %s, got %s", AllowedExtension, ext),
		})
		return
	}

	if header.Size > MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio file too large",
			"details": fmt.Sprintf("limit is %d bytes", MaxFileSize),
		})
		return
	}

	audioData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to read audio file",
			"details": err.Error(),
		})
		return
	}

	wav, err := parseWaveHeader(audioData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid audio file",
			"details": err.Error(),
		})
		return
	}
	if err := validateWave(wav); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "unsupported audio",
			"details": err.Error(),
		})
		return
	}

	// Make sure the controller (and its recognizer) exist for this user.
	ctrl := h.controllerFor(userID)

	rec, ok := h.recognizers.Load(userID)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "speech recognition is not available"})
		return
	}
	pusher, ok := rec.(audioPusher)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "speech recognition is not available"})
		return
	}

	// Strip the 44-byte header; the recognizer wants raw PCM samples.
	if err := pusher.PushAudio(c.Request.Context(), audioData[44:], int32(wav.SampleRate)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "speech recognition failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ctrl.Snapshot())
}
