package gogpu

import (
	"github.com/gogpu/gogpu/gpu"

	"github.com/gogpu/ink/surface"
)

// defaultBackend is shared by all surfaces created through the registry.
// It is initialized lazily, on the first surface creation.
var defaultBackend = NewBackend()

// init registers the gogpu surface backend on package import.
// This enables automatic backend selection via surface.NewSurface.
//
// To use the gogpu backend, import this package:
//
//	import _ "github.com/gogpu/ink/backend/gogpu"
//
// The backend also requires a GPU backend to be registered with gogpu.
// Import one of the following to enable GPU support:
//
//	import _ "github.com/gogpu/gogpu/gpu/backend/rust"   // Rust (wgpu-native)
//	import _ "github.com/gogpu/gogpu/gpu/backend/native" // Pure Go
//
// When no GPU backend is present, the registry reports this backend as
// unavailable and falls back to the built-in image backend.
func init() {
	surface.Register(BackendGoGPU, 50, newRegistrySurface, gpuAvailable)
}

// gpuAvailable reports whether a gogpu GPU backend is registered.
// The probe is cheap and does not initialize anything.
func gpuAvailable() bool {
	return gpu.GetBackend() != nil
}

// newRegistrySurface creates a GPU surface for the registry.
func newRegistrySurface(opts surface.Options) (surface.Surface, error) {
	if err := defaultBackend.Init(); err != nil {
		return nil, err
	}

	target, err := defaultBackend.NewTarget(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	target.SetAntialias(opts.Antialias)

	s, err := surface.NewGPUSurface(opts.Width, opts.Height, target)
	if err != nil {
		_ = target.Close()
		return nil, err
	}

	if opts.BackgroundColor != nil {
		s.Clear(opts.BackgroundColor)
	}

	return s, nil
}
