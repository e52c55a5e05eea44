package colorbar

// Raw emission for the normalization variants. Default-valued fields are
// omitted so the persisted form stays minimal; re-validating an emitted
// block refills the same defaults and yields an identical variant.

func (n *LinearNorm) Raw() map[string]any {
	out := map[string]any{"name": n.NormName()}
	putFloat(out, "vmin", n.VMin)
	putFloat(out, "vmax", n.VMax)
	if n.Clip {
		out["clip"] = true
	}
	return out
}

func (n *NoNorm) Raw() map[string]any {
	out := map[string]any{"name": n.NormName()}
	putFloat(out, "vmin", n.VMin)
	putFloat(out, "vmax", n.VMax)
	if n.Clip {
		out["clip"] = true
	}
	return out
}

func (n *BoundaryNorm) Raw() map[string]any {
	out := map[string]any{
		"name":       n.NormName(),
		"boundaries": append([]float64(nil), n.Boundaries...),
		"ncolors":    n.NColors,
	}
	if n.Extend != "neither" {
		out["extend"] = n.Extend
	}
	if n.Clip {
		out["clip"] = true
	}
	return out
}

func (n *CategoryNorm) Raw() map[string]any {
	out := map[string]any{
		"name":   n.NormName(),
		"labels": append([]string(nil), n.Labels...),
	}
	if n.FirstValue != 0 {
		out["first_value"] = n.FirstValue
	}
	return out
}

func (n *CenteredNorm) Raw() map[string]any {
	out := map[string]any{"name": n.NormName()}
	if n.VCenter != 0 {
		out["vcenter"] = n.VCenter
	}
	putFloat(out, "halfrange", n.Halfrange)
	if n.Clip {
		out["clip"] = true
	}
	return out
}

func (n *TwoSlopeNorm) Raw() map[string]any {
	out := map[string]any{
		"name":    n.NormName(),
		"vcenter": n.VCenter,
	}
	putFloat(out, "vmin", n.VMin)
	putFloat(out, "vmax", n.VMax)
	return out
}

func (n *LogNorm) Raw() map[string]any {
	out := map[string]any{"name": n.NormName()}
	putFloat(out, "vmin", n.VMin)
	putFloat(out, "vmax", n.VMax)
	if n.Clip {
		out["clip"] = true
	}
	return out
}

func (n *SymLogNorm) Raw() map[string]any {
	out := map[string]any{
		"name":      n.NormName(),
		"linthresh": n.LinThresh,
	}
	if n.LinScale != 1 {
		out["linscale"] = n.LinScale
	}
	if n.Base != 10 {
		out["base"] = n.Base
	}
	putFloat(out, "vmin", n.VMin)
	putFloat(out, "vmax", n.VMax)
	if n.Clip {
		out["clip"] = true
	}
	return out
}

func (n *PowerNorm) Raw() map[string]any {
	out := map[string]any{
		"name":  n.NormName(),
		"gamma": n.Gamma,
	}
	putFloat(out, "vmin", n.VMin)
	putFloat(out, "vmax", n.VMax)
	if n.Clip {
		out["clip"] = true
	}
	return out
}

func (n *AsinhNorm) Raw() map[string]any {
	out := map[string]any{"name": n.NormName()}
	if n.LinearWidth != 1 {
		out["linear_width"] = n.LinearWidth
	}
	putFloat(out, "vmin", n.VMin)
	putFloat(out, "vmax", n.VMax)
	if n.Clip {
		out["clip"] = true
	}
	return out
}

func putFloat(out map[string]any, key string, v *float64) {
	if v != nil {
		out[key] = *v
	}
}
