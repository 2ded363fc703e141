// Package ingestion delivers raw scanner payloads to the scoring pipeline.
// Sources push opaque JSON documents; decoding and field extraction happen
// downstream so a malformed payload never takes a source down.
package ingestion

import "context"

// RawPayload is one undecoded document received from a source.
type RawPayload struct {
	// Source names the producing source, used for metrics labels.
	Source string
	// Data is the raw JSON document.
	Data []byte
	// ReceivedAtMs is the Unix ms receive timestamp.
	ReceivedAtMs int64
}

// PayloadSource streams raw payloads until the context is canceled.
type PayloadSource interface {
	// Name identifies the source in logs and metrics.
	Name() string

	// Run delivers payloads to out until ctx is canceled or the source is
	// exhausted. Run must not close out; the caller owns the channel.
	Run(ctx context.Context, out chan<- RawPayload) error
}
