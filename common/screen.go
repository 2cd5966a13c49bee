package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit converts world units (+Y up) to screen pixels.
	PixelsPerUnit = 32.0
	TileSize      = 32

	// TPS is the fixed physics tick rate.
	TPS = 60
)

// WorldToScreen converts a world position to screen pixels given a camera
// position in world units. Screen Y grows downward.
func WorldToScreen(x, y, camX, camY float64) (float64, float64) {
	sx := (x-camX)*PixelsPerUnit + BaseWidth/2
	sy := BaseHeight/2 - (y-camY)*PixelsPerUnit
	return sx, sy
}
