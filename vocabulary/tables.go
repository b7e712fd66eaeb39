package vocabulary

// stateNames maps the six state codes to the spellings customers type.
var stateNames = map[string][]string{
	"NSW": {"New South Wales"},
	"VIC": {"Victoria"},
	"QLD": {"Queensland"},
	"SA":  {"South Australia"},
	"WA":  {"Western Australia"},
	"TAS": {"Tasmania"},
}

var defaultCategories = []Category{
	{ID: "fashion", Name: "Fashion", Synonyms: []string{"clothing", "clothes", "apparel", "womenswear", "menswear"}},
	{ID: "footwear", Name: "Footwear", Synonyms: []string{"shoes", "sneakers", "boots", "uggs", "ugg boots", "thongs"}},
	{ID: "food", Name: "Food & Beverage", Synonyms: []string{"food", "coffee", "cafe", "snacks", "confectionery", "drinks"}},
	{ID: "jewellery", Name: "Jewellery", Synonyms: []string{"jewelry", "watches", "accessories"}},
	{ID: "beauty", Name: "Beauty", Synonyms: []string{"cosmetics", "makeup", "skincare", "nails", "perfume"}},
	{ID: "electronics", Name: "Electronics", Synonyms: []string{"phones", "phone accessories", "gadgets", "tech"}},
	{ID: "homewares", Name: "Homewares", Synonyms: []string{"home goods", "kitchenware", "manchester", "candles"}},
	{ID: "toys", Name: "Toys & Games", Synonyms: []string{"toys", "games", "puzzles"}},
	{ID: "gifts", Name: "Gifts", Synonyms: []string{"giftware", "souvenirs", "cards"}},
	{ID: "health", Name: "Health", Synonyms: []string{"vitamins", "supplements", "wellness"}},
	{ID: "books", Name: "Books", Synonyms: []string{"stationery", "magazines"}},
	{ID: "services", Name: "Services", Synonyms: []string{"repairs", "key cutting", "phone repairs", "alterations"}},
}

var defaultAssetKeywords = []AssetKeyword{
	{Text: "third line income", AssetType: "third_line"},
	{Text: "vending machine", AssetType: "third_line", ThirdLineCategory: "vending"},
	{Text: "vacant shops", AssetType: "vacant_shop"},
	{Text: "vacant shop", AssetType: "vacant_shop"},
	{Text: "empty shop", AssetType: "vacant_shop"},
	{Text: "third line", AssetType: "third_line"},
	{Text: "3rd line", AssetType: "third_line"},
	{Text: "vending", AssetType: "third_line", ThirdLineCategory: "vending"},
	{Text: "signage", AssetType: "third_line", ThirdLineCategory: "signage"},
	{Text: "billboard", AssetType: "third_line", ThirdLineCategory: "signage"},
	{Text: "atm", AssetType: "third_line", ThirdLineCategory: "atm"},
}
