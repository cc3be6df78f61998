package appointments

// Catalog es de solo lectura: se arma una vez al arrancar.
type Catalog struct {
	order []string
	byID  map[string]Treatment
}

func NewCatalog(services ...Treatment) *Catalog {
	c := &Catalog{byID: make(map[string]Treatment, len(services))}
	for _, s := range services {
		if _, dup := c.byID[s.ID]; !dup {
			c.order = append(c.order, s.ID)
		}
		c.byID[s.ID] = s
	}
	return c
}

func (c *Catalog) ByID(id string) (Treatment, bool) {
	s, ok := c.byID[id]
	return s, ok
}

func (c *Catalog) All() []Treatment {
	out := make([]Treatment, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
