package dealers

// Dealer is one sales point fetched from the catalog backend.
type Dealer struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Area     string `json:"area"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}

// Directory answers area and dealer lookups over the fetched dealer list.
// Inactive dealers are invisible to every query. Immutable after construction.
type Directory struct {
	dealers []Dealer
}

func NewDirectory(list []Dealer) *Directory {
	active := make([]Dealer, 0, len(list))
	for _, dealer := range list {
		if dealer.IsActive {
			active = append(active, dealer)
		}
	}
	return &Directory{dealers: active}
}

// Areas returns the sales areas in the order the backend first lists them.
func (d *Directory) Areas() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, dealer := range d.dealers {
		if _, ok := seen[dealer.Area]; ok {
			continue
		}
		seen[dealer.Area] = struct{}{}
		out = append(out, dealer.Area)
	}
	return out
}

// InArea returns the dealers of one area in backend order.
func (d *Directory) InArea(area string) []Dealer {
	var out []Dealer
	for _, dealer := range d.dealers {
		if dealer.Area == area {
			out = append(out, dealer)
		}
	}
	return out
}

// ByName resolves a dealer by its display name.
func (d *Directory) ByName(name string) (Dealer, bool) {
	for _, dealer := range d.dealers {
		if dealer.Name == name {
			return dealer, true
		}
	}
	return Dealer{}, false
}

// HasArea reports whether the area exists.
func (d *Directory) HasArea(area string) bool {
	for _, dealer := range d.dealers {
		if dealer.Area == area {
			return true
		}
	}
	return false
}
