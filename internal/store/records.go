package store

// SKU references one sellable unit of a product by numeric code. Stock and
// price for a code live in the stockPrice collection; the join is computed
// at read time.
type SKU struct {
	Code int64 `json:"code"`
}

// Product is a catalog record. ID is the identity field used by update and
// delete.
type Product struct {
	ID          string `json:"id"`
	Brand       string `json:"brand"`
	Image       string `json:"image,omitempty"`
	Style       string `json:"style,omitempty"`
	Substyle    string `json:"substyle,omitempty"`
	ABV         string `json:"abv,omitempty"`
	Origin      string `json:"origin,omitempty"`
	Information string `json:"information,omitempty"`
	Skus        []SKU  `json:"skus"`
}

// ProductPatch is a shallow-merge update for a Product: non-nil fields
// overwrite, nil fields keep their current value. The identity field is
// not patchable.
type ProductPatch struct {
	Brand       *string `json:"brand"`
	Image       *string `json:"image"`
	Style       *string `json:"style"`
	Substyle    *string `json:"substyle"`
	ABV         *string `json:"abv"`
	Origin      *string `json:"origin"`
	Information *string `json:"information"`
	Skus        []SKU   `json:"skus"`
}

func (p *Product) apply(patch ProductPatch) {
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Style != nil {
		p.Style = *patch.Style
	}
	if patch.Substyle != nil {
		p.Substyle = *patch.Substyle
	}
	if patch.ABV != nil {
		p.ABV = *patch.ABV
	}
	if patch.Origin != nil {
		p.Origin = *patch.Origin
	}
	if patch.Information != nil {
		p.Information = *patch.Information
	}
	if patch.Skus != nil {
		p.Skus = patch.Skus
	}
}

// field returns the string form of a product field by its JSON name, for
// the fuzzy select filter. Non-string fields are not filterable.
func (p Product) field(name string) (string, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "brand":
		return p.Brand, true
	case "image":
		return p.Image, true
	case "style":
		return p.Style, true
	case "substyle":
		return p.Substyle, true
	case "abv":
		return p.ABV, true
	case "origin":
		return p.Origin, true
	case "information":
		return p.Information, true
	}
	return "", false
}

// StockPrice is a stock/price record. SKU is the identity field used by
// update and delete.
type StockPrice struct {
	SKU   int64   `json:"sku"`
	Stock int     `json:"stock"`
	Price float64 `json:"price"`
}

// StockPricePatch is a shallow-merge update for a StockPrice.
type StockPricePatch struct {
	Stock *int     `json:"stock"`
	Price *float64 `json:"price"`
}

func (sp *StockPrice) apply(patch StockPricePatch) {
	if patch.Stock != nil {
		sp.Stock = *patch.Stock
	}
	if patch.Price != nil {
		sp.Price = *patch.Price
	}
}
