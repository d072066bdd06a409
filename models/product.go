package models

// Product mirrors the remote catalog record. Prices arrive as strings.
type Product struct {
	ID           int        `json:"id"`
	ProductName  string     `json:"product_name"`
	ProductCode  string     `json:"product_code"`
	Price        string     `json:"price"`
	Img          string     `json:"img,omitempty"`
	Description  string     `json:"description,omitempty"`
	Badges       string     `json:"badges,omitempty"`
	Type         string     `json:"type"` // "veg" | "non-veg"
	FoodCategory string     `json:"food_category,omitempty"`
	FoodStyle    string     `json:"food_style,omitempty"`
	Tags         string     `json:"tags,omitempty"`
	Breakfast    string     `json:"breakfast,omitempty"` // "1" = offered
	Lunch        string     `json:"lunch,omitempty"`
	Dinner       string     `json:"dinner,omitempty"`
	Snacks       string     `json:"snacks,omitempty"`
	Beverages    string     `json:"beverages,omitempty"`
	Calories     string     `json:"calories,omitempty"`
	Protein      string     `json:"protein,omitempty"`
	Carbs        string     `json:"carbs,omitempty"`
	Fat          string     `json:"fat,omitempty"`
	IsCampaign   bool       `json:"is_campaign"`
	IsAddon      bool       `json:"is_addon"`
	Status       string     `json:"status"`
	Campaigns    []Campaign `json:"campaigns,omitempty"`
	Addons       []Product  `json:"addons,omitempty"`
	Media        []Media    `json:"media,omitempty"`
}

// Campaign is a promotional price attached to a product. The promo_price
// form is the canonical discount model.
type Campaign struct {
	ID           int    `json:"id"`
	CampaignCode string `json:"campaign_code"`
	CampaignName string `json:"campaign_name"`
	PromoPrice   string `json:"promo_price"`
	Status       string `json:"status"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
}

// Media is one asset attached to a product.
type Media struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Meta struct {
		URLs struct {
			Original string `json:"original"`
			Medium   string `json:"medium"`
			Thumb    string `json:"thumb"`
		} `json:"urls"`
	} `json:"meta"`
}

// MealTimes is the display form of the per-meal availability flags.
type MealTimes struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
	Snacks    bool `json:"snacks"`
	Beverages bool `json:"beverages"`
}

// ProductDisplay is the transformed, client-facing view of a product with
// campaign discounting already applied.
type ProductDisplay struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Price         float64    `json:"price"`
	OriginalPrice float64    `json:"originalPrice,omitempty"`
	ImageURI      string     `json:"imageUri,omitempty"`
	Description   string     `json:"description,omitempty"`
	Badges        string     `json:"badges,omitempty"`
	Type          string     `json:"type"`
	Category      string     `json:"category,omitempty"`
	Protein       string     `json:"protein,omitempty"`
	Calories      string     `json:"calories,omitempty"`
	Carbs         string     `json:"carbs,omitempty"`
	Fat           string     `json:"fat,omitempty"`
	Discount      string     `json:"discount,omitempty"`
	Tags          []string   `json:"tags"`
	IsOrganic     bool       `json:"isOrganic"`
	IsVeg         bool       `json:"isVeg"`
	HasAddons     bool       `json:"hasAddons"`
	HasCampaign   bool       `json:"hasCampaign"`
	Addons        []Product  `json:"addons"`
	Campaigns     []Campaign `json:"campaigns"`
	MealTimes     MealTimes  `json:"mealTimes"`
}
