package protocol

import (
	"encoding/json"
	"fmt"
)

// Identifies a request or response type on the wire.
type Command string

const (
	CmdBuild           Command = "build"
	CmdImageImport     Command = "image-import"
	CmdImageDestroy    Command = "image-destroy"
	CmdContainerStatus Command = "container-status"
	CmdStatus          Command = "status"
	CmdShutdown        Command = "shutdown"
	CmdOK              Command = "ok"
	CmdError           Command = "error"
)

// State of a build container as reported by the runtime.
type ContainerState string

const (
	ContainerRunning    ContainerState = "running"
	ContainerStopped    ContainerState = "stopped"
	ContainerNotCreated ContainerState = "not-created"
)

// Wraps a command and its payload for transmission.
type Envelope struct {
	Command Command         `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Serializes a command and payload into a JSON envelope.
func Encode(cmd Command, payload any) ([]byte, error) {
	env := Envelope{Command: cmd}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		env.Payload = data
	}

	return json.Marshal(env)
}

// Parses a JSON envelope, returning the envelope and its raw payload.
func Decode(data []byte) (Envelope, json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Command == "" {
		return Envelope{}, nil, fmt.Errorf("decode envelope: missing command")
	}
	return env, env.Payload, nil
}

// Parses a raw payload into a typed request or result.
func DecodePayload[T any](payload json.RawMessage) (*T, error) {
	var v T
	if len(payload) == 0 {
		return &v, nil
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &v, nil
}
