package v1

import (
	"bytes"
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/character-builder/internal/errors"
)

// decode reads a Struct into a request type. Unknown fields are rejected
// so typos surface instead of being ignored.
func decode(req *structpb.Struct, v any) error {
	if req == nil {
		req = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(req)
	if err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.InvalidArgumentf("malformed request: %v", err)
	}
	return nil
}

// encode writes a response type as a Struct
func encode(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}

// respond encodes v, converting any failure to a gRPC status
func respond(v any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	out, err := encode(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}
