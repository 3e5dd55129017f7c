package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"lineplot/pkg/annotation"
	"lineplot/pkg/axis"
	"lineplot/pkg/geometry"
	"lineplot/pkg/graphics"
)

// parseLine builds annotation parameters from a --line value:
//
//	h:Y | v:X | eq:SLOPE,INTERCEPT | pts:X1,Y1,X2,Y2
//
// followed by optional ;key=value attributes.
func parseLine(spec string) (annotation.Params, error) {
	p := annotation.DefaultParams()

	parts := strings.Split(spec, ";")
	kind, args, ok := strings.Cut(strings.TrimSpace(parts[0]), ":")
	if !ok {
		return p, fmt.Errorf("line %q: missing kind, want h:, v:, eq: or pts:", spec)
	}
	nums, err := parseFloats(args)
	if err != nil {
		return p, fmt.Errorf("line %q: %w", spec, err)
	}

	want := map[string]int{"h": 1, "v": 1, "eq": 2, "pts": 4}
	n, known := want[kind]
	if !known {
		return p, fmt.Errorf("line %q: unknown kind %q", spec, kind)
	}
	if len(nums) != n {
		return p, fmt.Errorf("line %q: %s takes %d values, got %d", spec, kind, n, len(nums))
	}
	switch kind {
	case "h":
		p.Line = geometry.HorizontalAt(nums[0])
	case "v":
		p.Line = geometry.VerticalAt(nums[0])
	case "eq":
		p.Line = geometry.Linear(nums[0], nums[1])
	case "pts":
		p.Line = geometry.Through(graphics.Pt(nums[0], nums[1]), graphics.Pt(nums[2], nums[3]))
	}

	for _, attr := range parts[1:] {
		attr = strings.TrimSpace(attr)
		if attr == "" {
			continue
		}
		if err := applyAttr(&p, attr); err != nil {
			return p, fmt.Errorf("line %q: %w", spec, err)
		}
	}
	if p.Label.Text != "" && p.Label.Placement == annotation.LabelNone {
		p.Label.Placement = annotation.LabelEnd
	}
	return p, nil
}

func applyAttr(p *annotation.Params, attr string) error {
	key, value, _ := strings.Cut(attr, "=")
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	switch key {
	case "name":
		p.Name = value
	case "label":
		p.Label.Text = value
	case "at":
		if pl, ok := annotation.ParsePlacement(value); ok {
			p.Label.Placement = pl
			return nil
		}
		f, err := parseFinite(value)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("at: want start, middle, end or a fraction in [0,1], got %q", value)
		}
		p.Label.Placement = annotation.LabelCustom
		p.Label.Position = f
	case "offset":
		f, err := parseFinite(value)
		if err != nil {
			return fmt.Errorf("offset: %w", err)
		}
		p.Label.Offset = f
	case "along":
		on, err := parseFlag(value)
		if err != nil {
			return fmt.Errorf("along: %w", err)
		}
		p.Label.Orientation = annotation.TextHorizontal
		if on {
			p.Label.Orientation = annotation.TextAlongLine
		}
	case "color":
		c, err := graphics.ParseColor(value)
		if err != nil {
			return err
		}
		p.Stroke.Color = c
	case "width":
		f, err := parseFinite(value)
		if err != nil || f < 0 {
			return fmt.Errorf("width: want a non-negative number, got %q", value)
		}
		p.Stroke.Thickness = f
	case "dash":
		d, err := graphics.ParseDash(value)
		if err != nil {
			return err
		}
		p.Stroke.Dash = d
	case "minx", "maxx", "miny", "maxy":
		f, err := parseFinite(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "minx":
			p.Clamps.MinimumX = geometry.At(f)
		case "maxx":
			p.Clamps.MaximumX = geometry.At(f)
		case "miny":
			p.Clamps.MinimumY = geometry.At(f)
		case "maxy":
			p.Clamps.MaximumY = geometry.At(f)
		}
	case "below":
		on, err := parseFlag(value)
		if err != nil {
			return fmt.Errorf("below: %w", err)
		}
		p.Layer = annotation.AboveSeries
		if on {
			p.Layer = annotation.BelowSeries
		}
	case "hidden":
		on, err := parseFlag(value)
		if err != nil {
			return fmt.Errorf("hidden: %w", err)
		}
		p.Hidden = on
	default:
		return fmt.Errorf("unknown attribute %q", key)
	}
	return nil
}

// parseFlag treats a bare key as true.
func parseFlag(value string) (bool, error) {
	if value == "" {
		return true, nil
	}
	return strconv.ParseBool(value)
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", strings.TrimSpace(part))
		}
		out = append(out, v)
	}
	return out, nil
}

// parseRange parses "MIN,MAX".
func parseRange(s string) (axis.Range, error) {
	nums, err := parseFloats(s)
	if err != nil {
		return axis.Range{}, err
	}
	if len(nums) != 2 {
		return axis.Range{}, fmt.Errorf("range %q: want MIN,MAX", s)
	}
	r := axis.Range{Min: nums[0], Max: nums[1]}
	if !r.Valid() {
		return axis.Range{}, fmt.Errorf("range %q: want MIN < MAX", s)
	}
	return r, nil
}

// parsePoint parses "X,Y".
func parsePoint(s string) (graphics.Point, error) {
	nums, err := parseFloats(s)
	if err != nil {
		return graphics.Point{}, err
	}
	if len(nums) != 2 {
		return graphics.Point{}, fmt.Errorf("point %q: want X,Y", s)
	}
	return graphics.Pt(nums[0], nums[1]), nil
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: dimensions must be positive", s)
	}
	return w, h, nil
}

// parseFinite parses a float and rejects NaN and infinities.
func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}
