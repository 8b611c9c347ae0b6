package transform

import (
	"errors"
	"fmt"
)

type Pipeline struct {
	// Applied 0..N for Encode, N..0 for Decode.
	transforms []Transform
}

// NewPipeline builds a pipeline from the given transforms. At least one is
// required; use NewNoOpTransform for an explicitly empty pipeline.
func NewPipeline(transforms []Transform) (*Pipeline, error) {
	if len(transforms) == 0 {
		return nil, errors.New("pipeline requires at least one transform; use NewNoOpTransform for an empty pipeline")
	}
	s := make([]Transform, len(transforms))
	copy(s, transforms)
	return &Pipeline{transforms: s}, nil
}

// Encode applies the transforms in forward order.
func (p *Pipeline) Encode(payload []byte) ([]byte, error) {
	var err error
	cur := payload
	for i, t := range p.transforms {
		cur, err = t.Apply(cur)
		if err != nil {
			return nil, fmt.Errorf("encode: transform %d (%T) Apply failed: %w", i, t, err)
		}
	}
	return cur, nil
}

// Decode applies the transforms in reverse order.
func (p *Pipeline) Decode(payload []byte) ([]byte, error) {
	var err error
	cur := payload
	for i := len(p.transforms) - 1; i >= 0; i-- {
		t := p.transforms[i]
		cur, err = t.Reverse(cur)
		if err != nil {
			return nil, fmt.Errorf("decode: transform %d (%T) Reverse failed: %w", i, t, err)
		}
	}
	return cur, nil
}
