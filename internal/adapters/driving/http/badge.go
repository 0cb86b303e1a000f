package http

import (
	"fmt"
	"math"

	"github.com/custodia-labs/dri-core/internal/core/domain"
)

const (
	badgeWidth  = 120
	badgeHeight = 30
	badgeColor  = "#ffdd00"
)

// badgeBarWidth maps a 0-10 overall score to a percentage of the badge width
func badgeBarWidth(overall float64) float64 {
	if math.IsNaN(overall) || overall < 0 {
		return 0
	}
	if overall > domain.ScoreScaleMax {
		overall = domain.ScoreScaleMax
	}
	return overall / domain.ScoreScaleMax * 100
}

// renderBadge draws the embeddable score badge
func renderBadge(overall float64) string {
	if math.IsNaN(overall) {
		overall = 0
	}
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%%" height="100%%" fill="black"/>
  <rect x="0" y="0" width="%.2f%%" height="100%%" fill="%s"/>
  <text x="50%%" y="50%%" font-family="Arial" font-size="14" fill="white" text-anchor="middle" alignment-baseline="middle">Score: %.1f</text>
</svg>
`, badgeWidth, badgeHeight, badgeBarWidth(overall), badgeColor, overall)
}
