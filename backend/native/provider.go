//go:build !nogpu

package native

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"
)

// NewFromProvider creates a HALAdapter from a shared GPU device exposed
// by an external host (e.g. a gogpu application). The provider must
// implement HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue.
//
// This is the integration path for hosts that already own a device: the
// chart engine RECEIVES the device, it does not create one, so series
// buffers live alongside the host's other GPU resources.
func NewFromProvider(provider any, limits *types.Limits) (*HALAdapter, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("native: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("native: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("native: provider HalQueue is not hal.Queue")
	}

	return NewHALAdapter(device, queue, limits), nil
}
