package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBudgetBar renders used time against an estimate like
// [████░░░░]  45%. The bar is green below 80%, yellow below 100% and red
// beyond; the bar is clamped but the percentage is not.
func RenderBudgetBar(used float64, width int) string {
	if used < 0 {
		used = 0
	}
	if width < 2 {
		width = 2
	}

	clamped := used
	if clamped > 1 {
		clamped = 1
	}
	filled := int(clamped * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case used >= 1:
		style = StyleRed
	case used >= 0.8:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), used*100)
}
