package scene

import (
	"maps"
	"strconv"
	"strings"
)

// Render hint names.
const (
	HintScale       = "scale"
	HintOrigin      = "origin"
	HintBorders     = "borders"
	HintPage        = "page"
	HintOrientation = "orientation"
)

// Origin is the end of the domain axis drawn at the top of the scene.
type Origin string

const (
	OriginTop  Origin = "top"
	OriginBase Origin = "base"
)

// RenderHint returns the named hint, or "" when it is not set.
func (s *Scene) RenderHint(name string) string { return s.hints[name] }

// SetRenderHint sets a hint. An empty value removes it.
func (s *Scene) SetRenderHint(name, value string) {
	if value == "" {
		delete(s.hints, name)
		return
	}
	s.hints[name] = value
}

// RenderHints returns a copy of all hints.
func (s *Scene) RenderHints() map[string]string { return maps.Clone(s.hints) }

func (s *Scene) hint(name, def string) string {
	if v, ok := s.hints[name]; ok {
		return v
	}
	return def
}

// ScalingFactor returns pixels per domain unit. It is read from the scale
// hint, defaults to 1 and is -1 when the hint does not parse.
func (s *Scene) ScalingFactor() float64 {
	v, ok := parseNumber(s.hint(HintScale, "1"))
	if !ok {
		return -1
	}
	return v
}

// SetScalingFactor stores f in the scale hint and invalidates.
func (s *Scene) SetScalingFactor(f float64) {
	s.SetRenderHint(HintScale, strconv.FormatFloat(f, 'g', -1, 64))
	s.Invalidate()
}

// Origin returns OriginTop unless the origin hint says otherwise.
func (s *Scene) Origin() Origin {
	if strings.EqualFold(s.hint(HintOrigin, string(OriginTop)), string(OriginTop)) {
		return OriginTop
	}
	return OriginBase
}

// SetOrigin stores o in the origin hint and invalidates.
func (s *Scene) SetOrigin(o Origin) {
	s.SetRenderHint(HintOrigin, strings.ToLower(string(o)))
	s.Invalidate()
}

// Borders reports whether track borders are drawn. Defaults to true.
func (s *Scene) Borders() bool {
	return strings.EqualFold(s.hint(HintBorders, "true"), "true")
}

// Page returns the page being rendered, or 0 outside of paged rendering.
func (s *Scene) Page() int {
	n, err := strconv.Atoi(s.hints[HintPage])
	if err != nil {
		return 0
	}
	return n
}

// Parameter returns the named parameter, or def when it is unset or blank.
func (s *Scene) Parameter(name, def string) string {
	v := s.parameters[name]
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// SetParameter sets a parameter. A blank value removes it.
func (s *Scene) SetParameter(name, value string) {
	if strings.TrimSpace(value) == "" {
		delete(s.parameters, name)
		return
	}
	s.parameters[name] = value
}

// Parameters returns a copy of all parameters.
func (s *Scene) Parameters() map[string]string { return maps.Clone(s.parameters) }
