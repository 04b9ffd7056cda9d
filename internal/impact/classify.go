package impact

import (
	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Colour ramp for graduated population symbols. The first class is the
// empty/baseline class and is rendered fully transparent.
var impactColours = []string{
	"#FFFFFF", "#38A800", "#79C900", "#CEED00",
	"#FFCC00", "#FF6600", "#FF0000", "#7A0000",
}

const (
	baselineTransparency = 100
	classTransparency    = 30
)

// NumClasses is the default class count, one per ramp colour.
var NumClasses = len(impactColours)

// StyleClass is one display class: the value interval it covers, its label
// and how it is drawn.
type StyleClass struct {
	Label        string  `json:"label"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Colour       string  `json:"colour"`
	Transparency int     `json:"transparency"`
}

// ClassBreaks partitions a value distribution into ordered display classes.
// Breaks are the non-decreasing upper bounds of each class; the first class
// starts at zero and the last break equals the observed maximum.
type ClassBreaks struct {
	Breaks  []float64
	Classes []StyleClass
}

var printer = message.NewPrinter(language.English)

// FormatInt renders an integer with thousands separators.
func FormatInt(n int) string {
	return printer.Sprintf("%d", n)
}

// Classify partitions the values into numClasses equal-interval display
// classes. Fails with ErrEmptyDistribution when the input is empty or every
// value is zero; callers decide whether to substitute a placeholder set.
func Classify(values []float64, numClasses int) (*ClassBreaks, error) {
	if numClasses <= 0 {
		return nil, eris.Errorf("impact: class count must be positive, got %d", numClasses)
	}

	minV, maxV := 0.0, 0.0
	for i, v := range values {
		if i == 0 || v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if len(values) == 0 || maxV == 0 {
		return nil, eris.Wrapf(ErrEmptyDistribution, "%d values, max %g", len(values), maxV)
	}

	breaks := make([]float64, numClasses)
	if numClasses == 1 {
		breaks[0] = maxV
	} else {
		span := maxV - minV
		for i := range breaks {
			breaks[i] = minV + span*float64(i)/float64(numClasses-1)
		}
		breaks[numClasses-1] = maxV
	}

	classes := make([]StyleClass, numClasses)
	for i := range classes {
		sc := StyleClass{
			Colour:       impactColours[i%len(impactColours)],
			Transparency: classTransparency,
			Max:          breaks[i],
		}
		if i == 0 {
			sc.Min = 0
			sc.Transparency = baselineTransparency
		} else {
			sc.Min = breaks[i-1]
		}
		sc.Label = classLabel(sc.Min, sc.Max)
		classes[i] = sc
	}

	return &ClassBreaks{Breaks: breaks, Classes: classes}, nil
}

// PlaceholderClasses returns the single-class set used when the value
// distribution is degenerate: one transparent class covering zero.
func PlaceholderClasses() *ClassBreaks {
	sc := StyleClass{
		Label:        classLabel(0, 0),
		Colour:       impactColours[0],
		Transparency: baselineTransparency,
	}
	return &ClassBreaks{Breaks: []float64{0}, Classes: []StyleClass{sc}}
}

// classLabel renders a thousands-grouped interval label, e.g. "1,000 - 5,000".
func classLabel(min, max float64) string {
	return FormatInt(int(min+0.5)) + " - " + FormatInt(int(max+0.5))
}
