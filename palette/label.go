package palette

import "fmt"

// Label formats a colour filter row for k, e.g. "#5 White • 120" or
// "#33 ★ Dark Red • 4". Marker and other rows use their bound names.
func Label(k Key, m Meta, ok bool, count int) string {
	switch {
	case k.IsMarker():
		name := "Transparent"
		if ok && m.Name != "" {
			name = m.Name
		}
		return fmt.Sprintf("%s • %d", name, count)
	case k.IsOther():
		return fmt.Sprintf("Other • %d", count)
	}

	c, _ := k.Color()
	id, numeric := m.ID.Int()
	if !ok || !numeric {
		return fmt.Sprintf("rgb(%d,%d,%d) • %d", c.R, c.G, c.B, count)
	}
	name := m.Name
	if name == "" {
		name = fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	star := ""
	if m.Premium {
		star = "★ "
	}
	return fmt.Sprintf("#%d %s%s • %d", id, star, name, count)
}
