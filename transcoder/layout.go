package transcoder

import (
	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/transcoder/internal/layout"
)

type LayoutInfo = layout.Info

type LayoutCalculator struct {
	calc *layout.Calculator
}

func NewLayoutCalculator() *LayoutCalculator {
	return &LayoutCalculator{
		calc: layout.NewCalculator(),
	}
}

func (lc *LayoutCalculator) Calculate(s *copybook.Schema) LayoutInfo {
	return lc.calc.Calculate(s)
}

// ByteLength returns the number of bytes f occupies in a record.
func ByteLength(f copybook.Field) int {
	return layout.ByteLength(f)
}
