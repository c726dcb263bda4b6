package gpucore

// DeviceAdapter abstracts over GPU backend implementations.
//
// This interface is the integration point between the point store and the
// GPU: the store allocates one buffer per series and streams packed
// vertex data into it. Implementations must be thread-safe for
// concurrent use.
//
// Resource lifecycle:
//   - Buffers are created via CreateBuffer
//   - Buffers must be explicitly destroyed via DestroyBuffer
//   - Destroying a buffer while a frame references it is undefined behavior
//   - IDs become invalid after destruction and must not be reused
type DeviceAdapter interface {
	// MaxBufferSize returns the maximum buffer size in bytes.
	// The store refuses series that would exceed this limit.
	MaxBufferSize() uint64

	// CreateBuffer creates a GPU buffer.
	//
	// Parameters:
	//   - size: buffer size in bytes
	//   - usage: buffer usage flags (bitmask of BufferUsage*)
	//
	// Returns the buffer ID or an error if allocation fails.
	CreateBuffer(size int, usage BufferUsage) (BufferID, error)

	// DestroyBuffer releases a GPU buffer.
	DestroyBuffer(id BufferID)

	// WriteBuffer writes data to a buffer.
	// The data is copied to the GPU immediately or staged for later
	// upload; either way the write is visible to the next submitted
	// render pass.
	//
	// Parameters:
	//   - id: target buffer
	//   - offset: byte offset into the buffer
	//   - data: data to write
	WriteBuffer(id BufferID, offset uint64, data []byte)
}
