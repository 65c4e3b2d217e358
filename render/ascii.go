// File: render/ascii.go
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/lguibr/tiltmaze/game"
	"github.com/lguibr/tiltmaze/types"
	"github.com/lguibr/tiltmaze/utils"
)

// ASCII characters for grayscale, from lighter to darker
const asciiChars = " .,:;i1tfLCG08@"

// Dividing factor to convert RGB color space to grayscale
const grayFactor = 255.0 / float64(len(asciiChars)-1)

// Grayscale conversion factors for RGB components
const (
	RFactor = 1
	GFactor = 1
	BFactor = 1
)

var (
	wallColor = types.RGBPixel{R: 200, G: 200, B: 200}
	goalColor = types.RGBPixel{R: 40, G: 180, B: 60}
	ballColor = types.RGBPixel{R: 220, G: 60, B: 60}
)

// DrawStateOnRGBGrid rasterizes the maze and ball into a square pixel grid of
// the given size. Each pixel is classified by its polar coordinates relative
// to the maze center: goal disc, wall (arc or spoke within a small
// thickness), or empty. The ball is painted last so it always shows on top.
func DrawStateOnRGBGrid(maze *game.CircularMaze, ball *game.Ball, centerX, centerY float64, size int) [][]types.RGBPixel {
	pixels := make([][]types.RGBPixel, size)
	for i := range pixels {
		pixels[i] = make([]types.RGBPixel, size)
	}
	if maze == nil || size <= 0 {
		return pixels
	}

	scale := (2 * maze.TotalRadius) / float64(size)
	thickness := 1.5 * scale // wall half-width in maze units

	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			x := (float64(px)+0.5)*scale + centerX - maze.TotalRadius
			y := (float64(py)+0.5)*scale + centerY - maze.TotalRadius

			if ball != nil && utils.Distance(x, y, ball.X, ball.Y) < ball.Radius {
				pixels[py][px] = ballColor
				continue
			}

			dx, dy := x-centerX, y-centerY
			dist := utils.Length(dx, dy)

			if dist < maze.CenterRadius {
				pixels[py][px] = goalColor
				continue
			}
			if dist > maze.TotalRadius+thickness {
				continue
			}
			if maze.TotalRadius-dist < thickness {
				pixels[py][px] = wallColor
				continue
			}

			angle := utils.AngleFromTop(dx, dy)
			ring, seg, ok := maze.PositionCell(x, y, centerX, centerY)
			if !ok {
				continue
			}
			if isWallPixel(maze, ring, seg, dist, angle, thickness) {
				pixels[py][px] = wallColor
			}
		}
	}
	return pixels
}

// isWallPixel reports whether the point (dist, angle) sits on one of the
// cell's closed walls, within the rendering thickness.
func isWallPixel(maze *game.CircularMaze, ring, seg int, dist, angle, thickness float64) bool {
	cell := maze.Cells[ring][seg]
	innerR, outerR := maze.RingRadii(ring)
	start, end := maze.SegmentAngles(ring, seg)

	if cell.InnerWall && dist-innerR < thickness {
		return true
	}
	if cell.OuterWall && outerR-dist < thickness {
		return true
	}

	// Spokes get an angular thickness matching the linear one at this radius.
	angular := thickness / dist
	if cell.CcwWall && angularDistance(angle, start) < angular {
		return true
	}
	if cell.CwWall && angularDistance(angle, end) < angular {
		return true
	}
	return false
}

// angularDistance returns the absolute shortest angular distance between two
// angles.
func angularDistance(a, b float64) float64 {
	d := utils.NormalizeAngle(a - b)
	if d > math.Pi {
		d = utils.TwoPi - d
	}
	return d
}

// rgbToGray converts an RGB pixel to grayscale using the luminosity method
func rgbToGray(pixel types.RGBPixel) uint8 {
	r := RFactor * float64(pixel.R)
	g := GFactor * float64(pixel.G)
	b := BFactor * float64(pixel.B)
	sum := r + g + b
	if sum > 255 {
		sum = 255
	}
	return uint8(sum)
}

// grayToAscii maps a grayscale value to an ASCII character
func grayToAscii(gray uint8) string {
	index := int(float64(gray) / grayFactor)
	if index >= len(asciiChars) {
		index = len(asciiChars) - 1
	}
	return string(asciiChars[index])
}

// rgbToAnsi converts an RGB pixel to an ANSI escape code for that color
func rgbToAnsi(pixel types.RGBPixel) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", pixel.R, pixel.G, pixel.B)
}

// RenderToASCII converts a 2D slice of types.RGBPixels to an ASCII string.
// Each sampled pixel is written twice because terminal cells are roughly
// twice as tall as they are wide.
func RenderToASCII(pixels [][]types.RGBPixel, resolution int) string {
	height := len(pixels)
	if height == 0 || resolution <= 0 {
		return ""
	}
	width := len(pixels[0])
	stepX, stepY := float64(width)/float64(resolution), float64(height)/float64(resolution)
	var ascii strings.Builder
	for y := 0.0; y < float64(height-1); y += stepY {
		for x := 0.0; x < float64(width-1); x += stepX {
			i, j := int(math.Round(x)), int(math.Round(y))
			pixel := pixels[j][i]
			char := grayToAscii(rgbToGray(pixel))
			ansi := rgbToAnsi(pixel)
			ascii.WriteString(ansi + char + char + "\033[0m")
		}
		ascii.WriteString("\n")
	}
	return ascii.String()
}
