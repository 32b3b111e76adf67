package touch

// Indicator is a visual indicator the tracker can request.
type Indicator uint8

const (
	// IndicatorNone means no indicator.
	IndicatorNone Indicator = iota
	// IndicatorActive marks that a gesture is in progress.
	IndicatorActive
	// IndicatorLeft previews a left swipe.
	IndicatorLeft
	// IndicatorRight previews a right swipe.
	IndicatorRight
)

// String returns a string representation of the indicator.
func (i Indicator) String() string {
	switch i {
	case IndicatorActive:
		return "active"
	case IndicatorLeft:
		return "left"
	case IndicatorRight:
		return "right"
	default:
		return "none"
	}
}

// EffectKind is the kind of a declarative effect.
type EffectKind uint8

const (
	// EffectShowIndicator shows Effect.Indicator. Showing one horizontal
	// indicator replaces the other.
	EffectShowIndicator EffectKind = iota + 1
	// EffectHideHorizontal hides the left and right indicators.
	EffectHideHorizontal
	// EffectHideIndicators hides every indicator.
	EffectHideIndicators
	// EffectClassified carries the classification of the touch sequence.
	EffectClassified
)

// String returns a string representation of the effect kind.
func (k EffectKind) String() string {
	switch k {
	case EffectShowIndicator:
		return "show-indicator"
	case EffectHideHorizontal:
		return "hide-horizontal"
	case EffectHideIndicators:
		return "hide-indicators"
	case EffectClassified:
		return "classified"
	default:
		return "unknown"
	}
}

// Effect is a command returned by the tracker for the host to apply.
type Effect struct {
	Kind           EffectKind
	Indicator      Indicator
	Classification Classification
}

// ShowIndicator returns an effect showing i.
func ShowIndicator(i Indicator) Effect {
	return Effect{Kind: EffectShowIndicator, Indicator: i}
}

// HideHorizontal returns an effect hiding both horizontal indicators.
func HideHorizontal() Effect {
	return Effect{Kind: EffectHideHorizontal}
}

// HideIndicators returns an effect hiding all indicators.
func HideIndicators() Effect {
	return Effect{Kind: EffectHideIndicators}
}

// Classified returns an effect carrying c.
func Classified(c Classification) Effect {
	return Effect{Kind: EffectClassified, Classification: c}
}

// Classifications extracts the classifications from a list of effects.
func Classifications(effects []Effect) []Classification {
	var out []Classification
	for _, e := range effects {
		if e.Kind == EffectClassified {
			out = append(out, e.Classification)
		}
	}
	return out
}
