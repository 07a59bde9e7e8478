package garden

import (
	"encoding/json"
)

// MarshalJSON always writes the three lists, even when empty.
func (l Layer) MarshalJSON() ([]byte, error) {
	type layerJSON Layer
	out := layerJSON(l)
	if out.Anchors == nil {
		out.Anchors = []Anchor{}
	}
	if out.Components == nil {
		out.Components = []Component{}
	}
	if out.Contours == nil {
		out.Contours = []Contour{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON normalizes empty lists to nil so that decoded layers compare
// equal to freshly built ones.
func (l *Layer) UnmarshalJSON(data []byte) error {
	type layerJSON Layer
	var in layerJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if len(in.Anchors) == 0 {
		in.Anchors = nil
	}
	if len(in.Components) == 0 {
		in.Components = nil
	}
	if len(in.Contours) == 0 {
		in.Contours = nil
	}
	*l = Layer(in)
	return nil
}

type componentJSON struct {
	Name           string     `json:"name"`
	Transformation *Transform `json:"transformation,omitempty"`
}

// MarshalJSON omits the transformation when it is the identity.
func (c Component) MarshalJSON() ([]byte, error) {
	out := componentJSON{Name: c.Base}
	if c.Transform != Identity {
		t := c.Transform
		out.Transformation = &t
	}
	return json.Marshal(out)
}

// UnmarshalJSON defaults a missing transformation to the identity.
func (c *Component) UnmarshalJSON(data []byte) error {
	var in componentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c.Base = in.Name
	c.Transform = Identity
	if in.Transformation != nil {
		c.Transform = *in.Transformation
	}
	return nil
}

type transformJSON struct {
	XScale  *float64 `json:"x_scale,omitempty"`
	XYScale *float64 `json:"xy_scale,omitempty"`
	YXScale *float64 `json:"yx_scale,omitempty"`
	YScale  *float64 `json:"y_scale,omitempty"`
	XOffset *float64 `json:"x_offset,omitempty"`
	YOffset *float64 `json:"y_offset,omitempty"`
}

// MarshalJSON writes only the values that differ from the identity.
func (t Transform) MarshalJSON() ([]byte, error) {
	var out transformJSON
	if t.XScale != 1 {
		out.XScale = Float(t.XScale)
	}
	if t.XYScale != 0 {
		out.XYScale = Float(t.XYScale)
	}
	if t.YXScale != 0 {
		out.YXScale = Float(t.YXScale)
	}
	if t.YScale != 1 {
		out.YScale = Float(t.YScale)
	}
	if t.XOffset != 0 {
		out.XOffset = Float(t.XOffset)
	}
	if t.YOffset != 0 {
		out.YOffset = Float(t.YOffset)
	}
	return json.Marshal(out)
}

// UnmarshalJSON fills missing values from the identity.
func (t *Transform) UnmarshalJSON(data []byte) error {
	var in transformJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*t = Identity
	if in.XScale != nil {
		t.XScale = *in.XScale
	}
	if in.XYScale != nil {
		t.XYScale = *in.XYScale
	}
	if in.YXScale != nil {
		t.YXScale = *in.YXScale
	}
	if in.YScale != nil {
		t.YScale = *in.YScale
	}
	if in.XOffset != nil {
		t.XOffset = *in.XOffset
	}
	if in.YOffset != nil {
		t.YOffset = *in.YOffset
	}
	return nil
}

// encodeLayer renders a layer payload file.
func encodeLayer(l Layer) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// decodeLayer parses a layer payload file.
func decodeLayer(data []byte) (Layer, error) {
	var l Layer
	if err := json.Unmarshal(data, &l); err != nil {
		return Layer{}, err
	}
	return l, nil
}
