// Package tradesink delivers the trades produced by each submission to
// downstream consumers, in execution order, append-only.
package tradesink

import (
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/matching"
)

type Sink interface {
	// Append buffers trades in the order produced.
	Append(trades []matching.Trade) error
	// Flush forces buffered trades out.
	Flush() error
	Close() error
}

// Multi fans trades out to several sinks, preserving order in each.
type Multi struct {
	sinks []Sink
}

func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Append(trades []matching.Trade) error {
	for _, s := range m.sinks {
		if err := s.Append(trades); err != nil {
			return err
		}
	}
	return nil
}

func (m *Multi) Flush() error {
	for _, s := range m.sinks {
		if err := s.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Multi) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
