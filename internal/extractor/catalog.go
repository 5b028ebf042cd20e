package extractor

import "MarketTracker/internal/model"

// KnownProducts lists the tradeable goods we expect OCR to see.
var KnownProducts = []string{
	"Wuling Frozen Pears",
	"Eureka Anti-smog Tincture",
	"Wuxia Movies",
	"Nymphsprout",
	"Witchcraft Mining Drill",
	"Military Canned Food",
	"Musbeast Scrimshaw Dangles",
	"Valley Specialty",
	"Industrial Precision Component",
	"Gallic Standard Cookware",
	"Victoria Crown",
	"Lungmen Freshwater",
	"Sami Herbal Mix",
	"Iberian Dried Fish",
	"Kazimierz Knight Figurine",
	"Laterano Sacramental Candle",
	"Higashi Tea Set",
	"Sargon Spice",
	"Ursus Timber",
	"Yanese Silks",
	"Leithanian Instruments",
}

// ProductRegions maps each known product to its home market.
var ProductRegions = map[string]model.Region{
	"Wuling Frozen Pears":            model.RegionWuling,
	"Wuxia Movies":                   model.RegionWuling,
	"Nymphsprout":                    model.RegionWuling,
	"Witchcraft Mining Drill":        model.RegionWuling,
	"Military Canned Food":           model.RegionWuling,
	"Musbeast Scrimshaw Dangles":     model.RegionWuling,
	"Lungmen Freshwater":             model.RegionWuling,
	"Sami Herbal Mix":                model.RegionWuling,
	"Higashi Tea Set":                model.RegionWuling,
	"Ursus Timber":                   model.RegionWuling,
	"Yanese Silks":                   model.RegionWuling,
	"Eureka Anti-smog Tincture":      model.RegionValley,
	"Valley Specialty":               model.RegionValley,
	"Industrial Precision Component": model.RegionValley,
	"Gallic Standard Cookware":       model.RegionValley,
	"Victoria Crown":                 model.RegionValley,
	"Iberian Dried Fish":             model.RegionValley,
	"Kazimierz Knight Figurine":      model.RegionValley,
	"Laterano Sacramental Candle":    model.RegionValley,
	"Sargon Spice":                   model.RegionValley,
	"Leithanian Instruments":         model.RegionValley,
}
