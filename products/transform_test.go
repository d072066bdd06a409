package products

import (
	"testing"

	"moyo/models"
)

func TestTransformAppliesActivePromoPrice(t *testing.T) {
	p := models.Product{
		ID:          1,
		ProductName: "Organic Honey",
		Price:       "200",
		Badges:      "Organic,Fresh",
		Type:        "veg",
		Campaigns: []models.Campaign{
			{ID: 1, PromoPrice: "150", Status: "active"},
		},
	}

	d := Transform(p)
	if d.Price != 150 {
		t.Fatalf("expected promo price 150, got %v", d.Price)
	}
	if d.OriginalPrice != 200 {
		t.Fatalf("expected original price 200, got %v", d.OriginalPrice)
	}
	if d.Discount != "25% OFF" {
		t.Fatalf("expected 25%% OFF, got %q", d.Discount)
	}
	if !d.IsOrganic {
		t.Error("expected organic badge to be detected")
	}
	if !d.IsVeg {
		t.Error("expected veg flag")
	}
	if !d.HasCampaign {
		t.Error("expected campaign flag")
	}
}

func TestTransformIgnoresInactiveAndHigherPromos(t *testing.T) {
	p := models.Product{
		ID:          2,
		ProductName: "Milk",
		Price:       "60",
		Type:        "veg",
		Campaigns: []models.Campaign{
			{ID: 1, PromoPrice: "40", Status: "inactive"},
			{ID: 2, PromoPrice: "70", Status: "active"},
		},
	}

	d := Transform(p)
	if d.Price != 60 {
		t.Fatalf("expected list price 60, got %v", d.Price)
	}
	if d.OriginalPrice != 0 {
		t.Fatalf("expected no original price without a discount, got %v", d.OriginalPrice)
	}
	if d.Discount != "" {
		t.Fatalf("expected no discount text, got %q", d.Discount)
	}
}

func TestTransformDiscountRounding(t *testing.T) {
	p := models.Product{
		ID:          3,
		ProductName: "Paneer",
		Price:       "90",
		Type:        "veg",
		Campaigns: []models.Campaign{
			{ID: 1, PromoPrice: "60", Status: "active"},
		},
	}

	// 30/90 = 33.33% rounds to 33
	if d := Transform(p); d.Discount != "33% OFF" {
		t.Fatalf("expected 33%% OFF, got %q", d.Discount)
	}
}

func TestTransformMealTimesAndAddons(t *testing.T) {
	p := models.Product{
		ID:          4,
		ProductName: "Thali",
		Price:       "150",
		Type:        "non-veg",
		Breakfast:   "0",
		Lunch:       "1",
		Dinner:      "1",
		Protein:     "24",
		Addons:      []models.Product{{ID: 11, ProductName: "Raita", Price: "20"}},
	}

	d := Transform(p)
	if d.MealTimes.Breakfast || !d.MealTimes.Lunch || !d.MealTimes.Dinner {
		t.Fatalf("unexpected meal times: %+v", d.MealTimes)
	}
	if !d.HasAddons {
		t.Error("expected addons flag")
	}
	if d.IsVeg {
		t.Error("non-veg product flagged veg")
	}
	if d.Protein != "24g" {
		t.Fatalf("expected protein with unit, got %q", d.Protein)
	}
}

func TestTransformNormalizesNilSlices(t *testing.T) {
	d := Transform(models.Product{ID: 5, ProductName: "Bread", Price: "40", Type: "veg"})
	if d.Addons == nil || d.Campaigns == nil || d.Tags == nil {
		t.Fatal("expected empty slices, not nil")
	}
}

func TestTransformCleansTags(t *testing.T) {
	d := Transform(models.Product{ID: 6, ProductName: "Curd", Price: "50", Type: "veg", Tags: "Dairy, fresh ,dairy"})
	if len(d.Tags) != 2 || d.Tags[0] != "dairy" || d.Tags[1] != "fresh" {
		t.Fatalf("expected deduped lowercase tags, got %v", d.Tags)
	}
}

func TestImageURLPicksFirstImage(t *testing.T) {
	video := models.Media{ID: 1, Type: "video"}
	image := models.Media{ID: 2, Type: "image"}
	image.Meta.URLs.Original = "o.jpg"
	image.Meta.URLs.Medium = "m.jpg"
	image.Meta.URLs.Thumb = "t.jpg"

	media := []models.Media{video, image}
	if got := ImageURL(media, "medium"); got != "m.jpg" {
		t.Fatalf("expected m.jpg, got %q", got)
	}
	if got := ImageURL(media, "thumb"); got != "t.jpg" {
		t.Fatalf("expected t.jpg, got %q", got)
	}
	if got := ImageURL(nil, "medium"); got != "" {
		t.Fatalf("expected empty url for no media, got %q", got)
	}
}
