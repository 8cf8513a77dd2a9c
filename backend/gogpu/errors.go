// Package gogpu provides a GPU-accelerated surface backend for ink
// using the gogpu/gogpu framework.
//
// Importing this package registers the "gogpu" backend with the surface
// registry. Strokes are rasterized on the CPU and the result is kept
// resident in a GPU texture, so host applications can composite the
// canvas without an extra upload per frame.
//
// This backend uses gogpu's gpu.Backend interface, which supports both
// Rust (wgpu-native) and Pure Go (gogpu/wgpu) implementations. Import
// one of the following to enable GPU support:
//
//	import _ "github.com/gogpu/gogpu/gpu/backend/rust"   // Rust (wgpu-native)
//	import _ "github.com/gogpu/gogpu/gpu/backend/native" // Pure Go
package gogpu

import "errors"

// Package errors for the gogpu backend.
var (
	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("gogpu: backend not initialized")

	// ErrNoGPUBackend is returned when no GPU backend is available.
	ErrNoGPUBackend = errors.New("gogpu: no GPU backend available")

	// ErrDeviceCreationFailed is returned when GPU device creation fails.
	ErrDeviceCreationFailed = errors.New("gogpu: device creation failed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("gogpu: invalid dimensions")

	// ErrTargetClosed is returned when reading from a closed render target.
	ErrTargetClosed = errors.New("gogpu: target is closed")
)
