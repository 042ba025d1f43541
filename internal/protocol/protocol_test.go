package protocol

import (
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	data, err := Encode(CmdImageDestroy, &ImageDestroyRequest{Tag: "app:latest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Command != CmdImageDestroy {
		t.Errorf("command = %q, want %q", env.Command, CmdImageDestroy)
	}

	req, err := DecodePayload[ImageDestroyRequest](payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Tag != "app:latest" {
		t.Errorf("tag = %q, want app:latest", req.Tag)
	}
}

func TestContainerStatusExchange(t *testing.T) {
	data, err := Encode(CmdContainerStatus, &ContainerStatusRequest{ID: "svc-bake-1a2b3c4d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Command != CmdContainerStatus {
		t.Errorf("command = %q, want %q", env.Command, CmdContainerStatus)
	}

	req, err := DecodePayload[ContainerStatusRequest](payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ID != "svc-bake-1a2b3c4d" {
		t.Errorf("id = %q", req.ID)
	}

	data, err = Encode(CmdOK, &ContainerStatusResult{ID: req.ID, State: ContainerRunning})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, payload, err = Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := DecodePayload[ContainerStatusResult](payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.State != ContainerRunning {
		t.Errorf("state = %q, want %q", res.State, ContainerRunning)
	}
}

func TestEncodeNilPayload(t *testing.T) {
	data, err := Encode(CmdShutdown, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Command != CmdShutdown {
		t.Errorf("command = %q, want %q", env.Command, CmdShutdown)
	}
	if len(payload) != 0 {
		t.Errorf("payload = %q, want empty", payload)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, _, err := Decode([]byte("not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, _, err := Decode([]byte(`{"payload":{}}`)); err == nil {
		t.Error("expected error for missing command")
	}
}

func TestDecodePayloadEmpty(t *testing.T) {
	req, err := DecodePayload[StatusResult](nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Running {
		t.Error("zero value expected for empty payload")
	}
}
