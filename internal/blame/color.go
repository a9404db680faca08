package blame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Intensity returns the highlight strength of a change that is age old:
// exp(-age/window). It is 1 for a change made now and decays towards 0.
// The window is also the cutoff the Annotator uses, so a change exactly at
// the cutoff still has a small positive intensity.
func Intensity(age, window time.Duration) float64 {
	if age <= 0 {
		return 1
	}
	return math.Exp(-age.Seconds() / window.Seconds())
}

// ColorTemplate is an "R G B A" colour whose alpha component is replaced by
// the intensity of each change.
type ColorTemplate struct {
	prefix string // "R G B "
}

// NewColorTemplate builds a template from a space separated "R G B A" colour.
func NewColorTemplate(color string) (ColorTemplate, error) {
	fields := strings.Fields(color)
	if len(fields) != 4 {
		return ColorTemplate{}, fmt.Errorf("color %q must have 4 components (R G B A)", color)
	}
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return ColorTemplate{}, fmt.Errorf("color %q has non-numeric component %q", color, f)
		}
	}
	return ColorTemplate{prefix: strings.Join(fields[:3], " ") + " "}, nil
}

// Render substitutes intensity for the alpha component.
func (t ColorTemplate) Render(intensity float64) string {
	return t.prefix + strconv.FormatFloat(intensity, 'f', 6, 64)
}

func (t ColorTemplate) String() string {
	return t.prefix + "%f"
}
