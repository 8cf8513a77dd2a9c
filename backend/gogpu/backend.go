package gogpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gogpu/gpu"
	"github.com/gogpu/gogpu/gpu/types"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/surface"
)

// BackendGoGPU is the name of the gogpu backend.
const BackendGoGPU = "gogpu"

// Backend owns the GPU resources shared by all render targets created
// through it: the gogpu backend, instance, adapter, device and queue.
//
// This backend uses gogpu's gpu.Backend interface, which supports both
// Rust (wgpu-native) and Pure Go (gogpu/wgpu) implementations. The active
// implementation is selected based on build tags or explicit registration.
//
// Backend is safe for concurrent use from multiple goroutines.
type Backend struct {
	mu sync.RWMutex

	// GPU resources via gogpu
	gpuBackend gpu.Backend
	instance   types.Instance
	adapter    types.Adapter
	device     types.Device
	queue      types.Queue

	// State
	initialized bool
}

// NewBackend creates a new gogpu backend.
// The backend must be initialized with Init() before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return BackendGoGPU
}

// Init initializes the backend by creating GPU resources.
// This includes:
//   - Getting the active gogpu backend (Rust or Pure Go)
//   - Creating a WebGPU instance
//   - Requesting a GPU adapter
//   - Creating a logical device
//   - Getting the command queue
//
// Init is idempotent. Returns an error if GPU initialization fails.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	// Step 1: Get gogpu backend
	gpuBackend := gpu.GetBackend()
	if gpuBackend == nil {
		// Try to initialize default backend
		if err := gpu.InitDefaultBackend(); err != nil {
			return fmt.Errorf("%w: %w", ErrNoGPUBackend, err)
		}
		gpuBackend = gpu.GetBackend()
	}
	if gpuBackend == nil {
		return ErrNoGPUBackend
	}
	b.gpuBackend = gpuBackend

	ink.Logger().Info("gogpu: using GPU backend", "name", gpuBackend.Name())

	// Step 2: Create Instance
	instance, err := gpuBackend.CreateInstance()
	if err != nil {
		return fmt.Errorf("instance creation failed: %w", err)
	}
	b.instance = instance

	// Step 3: Request Adapter (prefer high performance GPU)
	adapter, err := gpuBackend.RequestAdapter(instance, &types.AdapterOptions{
		PowerPreference: types.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPUBackend, err)
	}
	b.adapter = adapter

	// Step 4: Create Device
	device, err := gpuBackend.RequestDevice(adapter, &types.DeviceOptions{
		Label: "ink-gogpu-device",
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceCreationFailed, err)
	}
	b.device = device

	// Step 5: Get Queue
	b.queue = gpuBackend.GetQueue(device)

	b.initialized = true
	ink.Logger().Info("gogpu: backend initialized")

	return nil
}

// Close releases all backend resources.
// The backend should not be used after Close is called.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	// Handles are managed by the gogpu backend and released with it.
	b.device = 0
	b.adapter = 0
	b.instance = 0
	b.queue = 0
	b.gpuBackend = nil
	b.initialized = false

	ink.Logger().Debug("gogpu: backend closed")
}

// NewTarget creates a GPU render target of the given size.
//
// The returned target rasterizes on the CPU and mirrors the result into
// a GPU texture on Flush. It implements surface.GPUBackend, so it can be
// wrapped in a surface.GPUSurface.
func (b *Backend) NewTarget(width, height int) (*Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.initialized {
		return nil, ErrNotInitialized
	}

	desc := &types.TextureDescriptor{
		Label: "ink-target",
		Size: types.Extent3D{
			Width:              safeIntToUint32(width),
			Height:             safeIntToUint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        types.TextureFormatRGBA8Unorm,
		Usage:         types.TextureUsageCopySrc | types.TextureUsageCopyDst | types.TextureUsageStorageBinding,
	}

	texture, err := b.gpuBackend.CreateTexture(b.device, desc)
	if err != nil {
		return nil, fmt.Errorf("gogpu: texture creation failed: %w", err)
	}

	return &Target{
		backend: b.gpuBackend,
		queue:   b.queue,
		texture: texture,
		img:     surface.NewImageSurface(width, height),
		width:   width,
		height:  height,
	}, nil
}

// IsInitialized returns true if the backend has been initialized.
func (b *Backend) IsInitialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.initialized
}

// GPUBackend returns the underlying gogpu GPU backend.
// Returns nil if the backend is not initialized.
func (b *Backend) GPUBackend() gpu.Backend {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gpuBackend
}

// Device returns the GPU device handle.
// Returns 0 if the backend is not initialized.
func (b *Backend) Device() types.Device {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.device
}

// Queue returns the GPU queue handle.
// Returns 0 if the backend is not initialized.
func (b *Backend) Queue() types.Queue {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue
}
