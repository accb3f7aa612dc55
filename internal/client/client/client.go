//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=../../mocks/mock_transport.go -package=mocks

package client

import "context"

// Header is one piece of request metadata. Name and Value are sent exactly as
// given; callers must encode values that are not header-safe.
type Header struct {
	Name  string
	Value string
}

// Callback receives the outcome of a Send. On success err is nil. On a
// transport or parse failure data is the zero Data; on a *RemoteError data
// still carries the envelope's "data" field.
type Callback func(err error, data Data)

// Transport sends one request and reports its outcome to done exactly once.
// Send must not block on the network.
type Transport interface {
	Send(ctx context.Context, endpoint string, payload []byte, headers []Header, done Callback)
}
