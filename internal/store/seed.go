package store

import "sort"

// Seed data used when the backing document is missing or unreadable. The
// catalog ids are fixed so a reseeded document is stable across restarts.
var seedProducts = []Product{
	{
		ID:          "0198e8a2-3c5e-4f11-9a44-d0f4b2c61a01",
		Brand:       "Heineken",
		Image:       "/public/heineken.png",
		Style:       "Lager",
		Substyle:    "Pale Lager",
		ABV:         "5.0%",
		Origin:      "Netherlands",
		Information: "Crisp pale lager brewed since 1873.",
		Skus:        []SKU{{Code: 1101}, {Code: 1102}},
	},
	{
		ID:          "0198e8a2-3c5e-4f11-9a44-d0f4b2c61a02",
		Brand:       "Guinness",
		Image:       "/public/guinness.png",
		Style:       "Stout",
		Substyle:    "Irish Dry Stout",
		ABV:         "4.2%",
		Origin:      "Ireland",
		Information: "Dry stout with a creamy nitrogen head.",
		Skus:        []SKU{{Code: 1201}},
	},
	{
		ID:          "0198e8a2-3c5e-4f11-9a44-d0f4b2c61a03",
		Brand:       "Lagunitas IPA",
		Image:       "/public/lagunitas-ipa.png",
		Style:       "IPA",
		Substyle:    "West Coast IPA",
		ABV:         "6.2%",
		Origin:      "United States",
		Information: "Hop-forward IPA with caramel malt balance.",
		Skus:        []SKU{{Code: 1301}, {Code: 1302}},
	},
	{
		ID:          "0198e8a2-3c5e-4f11-9a44-d0f4b2c61a04",
		Brand:       "Weihenstephaner",
		Image:       "/public/weihenstephaner.png",
		Style:       "Wheat Beer",
		Substyle:    "Hefeweizen",
		ABV:         "5.4%",
		Origin:      "Germany",
		Information: "Classic Bavarian hefeweizen from the world's oldest brewery.",
		Skus:        []SKU{{Code: 1401}},
	},
}

// seedStockPrices maps SKU code to its initial stock and price.
var seedStockPrices = map[int64]struct {
	Stock int
	Price float64
}{
	1101: {Stock: 48, Price: 6.9},
	1102: {Stock: 24, Price: 18.5},
	1201: {Stock: 36, Price: 9.4},
	1301: {Stock: 20, Price: 11.9},
	1302: {Stock: 8, Price: 32.0},
	1401: {Stock: 15, Price: 10.2},
}

// seedDocument builds a fresh document from the seed tables. The SKU map
// is flattened into records in ascending code order so the persisted
// document is deterministic.
func seedDocument() document {
	codes := make([]int64, 0, len(seedStockPrices))
	for code := range seedStockPrices {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	stock := make([]StockPrice, 0, len(codes))
	for _, code := range codes {
		v := seedStockPrices[code]
		stock = append(stock, StockPrice{SKU: code, Stock: v.Stock, Price: v.Price})
	}

	products := make([]Product, len(seedProducts))
	copy(products, seedProducts)

	return document{Products: products, StockPrice: stock}
}
