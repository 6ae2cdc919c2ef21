package main

type itemSeed struct {
	SKU      string
	Name     string
	Category string
	StockQty int
}

type bundleSeed struct {
	Code     string
	Name     string
	IsHidden bool
	// SKUs of the components; each is required once per bundle
	Components []string
}

var seedItems = []itemSeed{
	{"aixie_badge_a", "Aixie Badge A", "badge", 100},
	{"aixie_badge_b", "Aixie Badge B", "badge", 100},
	{"aixie_sticker", "Aixie Sticker", "sticker", 500},
	{"aixie_backcard", "Aixie Backcard", "backcard", 200},
	{"aixie_standee", "Aixie Standee", "standee", 50},

	{"corncandy_card", "Corncandy Card", "card", 200},
	{"corncandy_standee", "Corncandy Standee", "standee", 50},
	{"corncandy_sticker", "Corncandy Sticker", "sticker", 500},
	{"corncandy_backcard", "Corncandy Backcard", "backcard", 200},
	{"corncandy_badge", "Corncandy Badge", "badge", 100},

	{"clove_badge", "Clove Badge", "badge", 100},
	{"clove_standee", "Clove Standee", "standee", 50},
	{"clove_sticker", "Clove Sticker", "sticker", 500},
	{"clove_backcard", "Clove Backcard", "backcard", 200},

	{"muo_standee", "Muo Standee (hidden)", "standee", 30},
}

var seedBundles = []bundleSeed{
	{
		Code: "aixie_bundle", Name: "Aixie Set",
		Components: []string{"aixie_badge_a", "aixie_badge_b", "aixie_sticker", "aixie_backcard", "aixie_standee"},
	},
	{
		Code: "corncandy_bundle", Name: "Corncandy Set",
		Components: []string{"corncandy_card", "corncandy_standee", "corncandy_sticker", "corncandy_backcard", "corncandy_badge"},
	},
	{
		Code: "clove_bundle", Name: "Clove Set",
		Components: []string{"clove_badge", "clove_standee", "clove_sticker", "clove_backcard"},
	},
	{
		Code: "muo_bundle", Name: "Hidden Muo", IsHidden: true,
		Components: []string{"muo_standee"},
	},
}
