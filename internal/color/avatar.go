// Package color derives deterministic avatar colors for users.
package color

import (
	"fmt"
	"hash/fnv"
)

// Saturation and lightness are fixed; only the hue varies per user, so
// every avatar stays readable on a light background.
const (
	avatarSaturation = 0.48
	avatarLightness  = 0.62
)

// ForUser returns a stable hex color for a user ID. The same ID always
// maps to the same hue.
func ForUser(userID string) string {
	hash := fnv.New32a()
	hash.Write([]byte(userID))
	hue := float64(hash.Sum32() % 360)

	r, g, b := hslToRGB(hue, avatarSaturation, avatarLightness)

	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// hslToRGB converts HSL (hue in degrees, saturation and lightness in
// 0-1) to 0-255 RGB channels.
func hslToRGB(hue, sat, light float64) (r, g, b uint8) {
	if sat == 0 {
		gray := uint8(light * 255)
		return gray, gray, gray
	}

	var chroma float64
	if light < 0.5 {
		chroma = light * (1 + sat)
	} else {
		chroma = light + sat - light*sat
	}
	base := 2*light - chroma

	h := hue / 360.0
	r = channel(base, chroma, h+1.0/3.0)
	g = channel(base, chroma, h)
	b = channel(base, chroma, h-1.0/3.0)
	return r, g, b
}

// channel resolves one RGB channel from the HSL helper values at the
// given hue offset.
func channel(base, chroma, t float64) uint8 {
	switch {
	case t < 0:
		t++
	case t > 1:
		t--
	}

	var v float64
	switch {
	case t < 1.0/6.0:
		v = base + (chroma-base)*6*t
	case t < 1.0/2.0:
		v = chroma
	case t < 2.0/3.0:
		v = base + (chroma-base)*(2.0/3.0-t)*6
	default:
		v = base
	}

	return uint8(v * 255)
}
