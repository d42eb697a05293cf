// Package imaging provides the image collaborators around the tone-curve engine.
//
// It loads and saves images, encodes previews for transport, wraps the
// general-purpose enhancers (brightness, contrast, saturation, sharpness, gamma)
// and reports color samples and tone statistics for judging an adjustment.
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Enhancement Factors
//
// Enhancers take a factor where 1.0 leaves the image unchanged. They flatten
// their input to opaque RGB, never modify it, and return a new image whose
// origin is (0,0). The shadow curve itself lives in package tone.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images. Images
// handed out by the cache must be treated as read-only.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//   - Lightness: CIE L* (0-100)
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - A nil image (wrapping tone.ErrInvalidInput)
//   - Coordinates outside image bounds
//   - File I/O errors during image loading or saving
//   - Unsupported output formats
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid redundant
// disk reads. Large images may consume significant memory when cached.
// Consider using Evict() or Clear() to manage memory for long-running processes.
package imaging
