package publish

import (
	"math"
	"strings"
)

// RatingStars renders a rating as filled stars, with one hollow star when a
// fractional remainder is left over: 4.0 -> "★★★★", 4.3 -> "★★★★☆".
// Ratings are not range-checked.
func RatingStars(rating float64) string {
	major := int(math.Floor(rating))
	if major < 0 {
		major = 0
	}
	stars := strings.Repeat("★", major)
	if rating-math.Floor(rating) > 0 {
		stars += "☆"
	}
	return stars
}
