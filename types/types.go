package types

// RGBPixel is one pixel of a rasterized frame, consumed by the ASCII renderer.
type RGBPixel struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}
