package products

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"moyo/models"
	"moyo/utils"
)

// ImageURL picks the first image asset's URL at the requested size.
func ImageURL(media []models.Media, size string) string {
	for _, m := range media {
		if m.Type != "image" {
			continue
		}
		switch size {
		case "thumb":
			return m.Meta.URLs.Thumb
		case "original":
			return m.Meta.URLs.Original
		default:
			return m.Meta.URLs.Medium
		}
	}
	return ""
}

// Transform converts a raw catalog product into its display form, applying
// the active campaign's promo price when it undercuts the list price.
func Transform(p models.Product) models.ProductDisplay {
	originalPrice, _ := strconv.ParseFloat(p.Price, 64)

	displayPrice := originalPrice
	var discountText string
	hasDiscount := false

	for _, c := range p.Campaigns {
		if c.Status != "active" || c.PromoPrice == "" {
			continue
		}
		promoPrice, err := strconv.ParseFloat(c.PromoPrice, 64)
		if err != nil || promoPrice >= originalPrice {
			continue
		}
		displayPrice = promoPrice
		hasDiscount = true
		percent := int(math.Round((originalPrice - promoPrice) / originalPrice * 100))
		discountText = fmt.Sprintf("%d%% OFF", percent)
		break
	}

	isOrganic := strings.Contains(strings.ToLower(p.Badges), "organic") ||
		strings.Contains(strings.ToLower(p.Tags), "organic")

	display := models.ProductDisplay{
		ID:          p.ID,
		Name:        p.ProductName,
		Price:       displayPrice,
		ImageURI:    ImageURL(p.Media, "medium"),
		Description: p.Description,
		Badges:      p.Badges,
		Type:        p.Type,
		Category:    p.FoodCategory,
		Protein:     withUnit(p.Protein, "g"),
		Calories:    p.Calories,
		Carbs:       withUnit(p.Carbs, "g"),
		Fat:         withUnit(p.Fat, "g"),
		Discount:    discountText,
		Tags:        utils.SplitTags(p.Tags),
		IsOrganic:   isOrganic,
		IsVeg:       p.Type == "veg",
		HasAddons:   len(p.Addons) > 0,
		HasCampaign: p.IsCampaign || len(p.Campaigns) > 0,
		Addons:      p.Addons,
		Campaigns:   p.Campaigns,
		MealTimes: models.MealTimes{
			Breakfast: p.Breakfast == "1",
			Lunch:     p.Lunch == "1",
			Dinner:    p.Dinner == "1",
			Snacks:    p.Snacks == "1",
			Beverages: p.Beverages == "1",
		},
	}
	if hasDiscount {
		display.OriginalPrice = originalPrice
	}
	if display.Addons == nil {
		display.Addons = []models.Product{}
	}
	if display.Campaigns == nil {
		display.Campaigns = []models.Campaign{}
	}
	return display
}

// TransformAll maps a catalog listing into display form.
func TransformAll(products []models.Product) []models.ProductDisplay {
	out := make([]models.ProductDisplay, 0, len(products))
	for _, p := range products {
		out = append(out, Transform(p))
	}
	return out
}

func withUnit(value, unit string) string {
	if value == "" {
		return ""
	}
	return value + unit
}
