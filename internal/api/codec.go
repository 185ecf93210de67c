// Package api is the wire contract of the farmauth gRPC service: message
// types, the service descriptor and a client stub. Messages travel as JSON
// through a gRPC codec registered under ContentSubtype.
package api

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// ContentSubtype is the gRPC content-subtype ("application/grpc+json")
// every AuthService call uses.
const ContentSubtype = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return ContentSubtype }

// CallOption makes a call use the JSON codec. Client stubs add it to every
// call.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(ContentSubtype)
}
