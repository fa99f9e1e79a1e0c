package secard

import "strings"

// locationKey names the metadata object for one face.
func locationKey(side Sheet) string {
	if side == Back {
		return "locationBack"
	}
	return "locationFront"
}

// iconList maps a "|"-separated list of metadata icon names to Strange Eons
// icons. Icons that are not printed become "None".
func (r *Renderer) iconList(meta Record, path string) []string {
	raw := meta.String(path, "")
	if raw == "" {
		return nil
	}
	var icons []string
	for name := range strings.SplitSeq(raw, "|") {
		icons = append(icons, r.tables.LocationIcon(name))
	}
	return icons
}

// LocationIcon returns the location symbol of a face, or "None".
func (r *Renderer) LocationIcon(meta Record, side Sheet) string {
	icons := r.iconList(meta, locationKey(side)+".icons")
	if len(icons) == 0 {
		return none
	}
	return icons[0]
}

// Connection returns the i-th (0-based) connection symbol of a face, or "None".
func (r *Renderer) Connection(meta Record, side Sheet, i int) string {
	icons := r.iconList(meta, locationKey(side)+".connections")
	if i < 0 || i >= len(icons) {
		return none
	}
	return icons[i]
}
