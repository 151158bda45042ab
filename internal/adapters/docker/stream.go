package docker

import (
	"encoding/json"
	"errors"
	"io"

	"go.trai.ch/stevedore/internal/core/domain"
	"go.trai.ch/zerr"
)

// buildMessage is one JSON object of the build progress stream.
type buildMessage struct {
	Stream      string `json:"stream"`
	Status      string `json:"status"`
	ID          string `json:"id"`
	Progress    string `json:"progress"`
	Error       string `json:"error"`
	ErrorDetail struct {
		Message string `json:"message"`
	} `json:"errorDetail"`
}

// decodeBuildStream reads build messages until EOF, passing each to onEvent.
// It returns ErrBuildFailure carrying the last error message seen, if any.
func decodeBuildStream(r io.Reader, onEvent func(domain.BuildEvent)) error {
	dec := json.NewDecoder(r)
	var failure string
	for {
		var msg buildMessage
		err := dec.Decode(&msg)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			decodeErr := zerr.Wrap(domain.ErrBuildFailure, "malformed build output")
			return zerr.With(decodeErr, "cause", err.Error())
		}

		event := domain.BuildEvent{
			Stream:   msg.Stream,
			Status:   msg.Status,
			ID:       msg.ID,
			Progress: msg.Progress,
			Error:    msg.Error,
		}
		if event.Error == "" {
			event.Error = msg.ErrorDetail.Message
		}
		if event.Error != "" {
			failure = event.Error
		}
		if onEvent != nil {
			onEvent(event)
		}
	}

	if failure != "" {
		return zerr.With(zerr.Wrap(domain.ErrBuildFailure, "image build failed"), "reason", failure)
	}
	return nil
}
