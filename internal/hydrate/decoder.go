// Package hydrate decodes JSON property patches into typed values through a
// configurable pipeline: raw JSON, pre-hooks over the generic payload, a
// decode step and post-hooks over the typed result.
package hydrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyPayload is returned when a patch document carries no properties.
var ErrEmptyPayload = errors.New("hydrate: payload is empty")

// Context identifies the target a payload is decoded for.
type Context struct {
	Target  string
	LayerID string
}

func (c Context) String() string {
	if c.LayerID == "" {
		return c.Target
	}
	return c.Target + ":" + c.LayerID
}

// PreHook lets callers mutate or normalise the payload before decoding.
type PreHook func(Context, map[string]any) (map[string]any, error)

// PostHook lets callers adjust or validate the decoded value.
type PostHook[T any] func(Context, *T) error

// CustomDecoder replaces the default JSON decoding step.
type CustomDecoder[T any] func(Context, map[string]any) (T, error)

// DecoderOption configures a Decoder instance.
type DecoderOption[T any] func(*Decoder[T])

// Decoder converts patch payloads into T.
type Decoder[T any] struct {
	preHooks     []PreHook
	postHooks    []PostHook[T]
	configureDec []func(*json.Decoder)
	custom       CustomDecoder[T]
	allowEmpty   bool
}

// WithPreHook applies hook prior to decoding.
func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithUseNumber keeps JSON numbers as json.Number in the generic payload.
func WithUseNumber[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.configureDec = append(d.configureDec, func(dec *json.Decoder) {
			dec.UseNumber()
		})
	}
}

// WithDisallowUnknownFields rejects unknown fields on the default decode path.
func WithDisallowUnknownFields[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.configureDec = append(d.configureDec, func(dec *json.Decoder) {
			dec.DisallowUnknownFields()
		})
	}
}

// WithCustomDecoder replaces the default JSON decoding step.
func WithCustomDecoder[T any](decoder CustomDecoder[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.custom = decoder
	}
}

// WithAllowEmpty accepts payloads without any properties.
func WithAllowEmpty[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.allowEmpty = true
	}
}

// NewDecoder builds a Decoder from opts.
func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// DecodeJSON parses data as a JSON object and runs it through Decode.
func (d *Decoder[T]) DecodeJSON(ctx Context, data []byte) (T, error) {
	var zero T
	payload := map[string]any{}
	dec := d.newJSONDecoder(data)
	if err := dec.Decode(&payload); err != nil {
		return zero, fmt.Errorf("hydrate: parse %s patch: %w", ctx, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return zero, fmt.Errorf("hydrate: parse %s patch: trailing data", ctx)
	}
	return d.Decode(ctx, payload)
}

// Decode runs payload through the pre-hooks, the decode step and the
// post-hooks. The caller's payload is never modified.
func (d *Decoder[T]) Decode(ctx Context, payload map[string]any) (T, error) {
	var zero T

	if payload == nil {
		return zero, fmt.Errorf("hydrate: payload is nil for %s", ctx)
	}

	current := clonePayload(payload)
	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, current)
		if err != nil {
			return zero, fmt.Errorf("hydrate: pre-hook for %s failed: %w", ctx, err)
		}
		if next != nil {
			current = next
		}
	}
	if len(current) == 0 && !d.allowEmpty {
		return zero, fmt.Errorf("%w for %s", ErrEmptyPayload, ctx)
	}

	var result T
	if d.custom != nil {
		decoded, err := d.custom(ctx, current)
		if err != nil {
			return zero, fmt.Errorf("hydrate: decode %s: %w", ctx, err)
		}
		result = decoded
	} else {
		buffer, err := json.Marshal(current)
		if err != nil {
			return zero, fmt.Errorf("hydrate: marshal payload for %s: %w", ctx, err)
		}
		if err := d.newJSONDecoder(buffer).Decode(&result); err != nil {
			return zero, fmt.Errorf("hydrate: decode %s: %w", ctx, err)
		}
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, &result); err != nil {
			return zero, fmt.Errorf("hydrate: post-hook for %s failed: %w", ctx, err)
		}
	}

	return result, nil
}

func (d *Decoder[T]) newJSONDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	for _, configure := range d.configureDec {
		if configure != nil {
			configure(dec)
		}
	}
	return dec
}

// clonePayload copies the top level of payload. Patch values are scalars, so
// a shallow copy is enough to keep hooks from touching the caller's map.
func clonePayload(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		out[key] = value
	}
	return out
}
