package model

// Example is a canned proposal that pre-fills the input.
type Example struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FullText    string `json:"fullText"`
}

// Examples returns the built-in example proposals in display order.
func Examples() []Example {
	return []Example{
		{
			Title:       "Eco-Friendly Packaging",
			Description: "A subscription service providing biodegradable packaging solutions for small e-commerce businesses to reduce plastic waste.",
			FullText:    "A subscription-based service that provides 100% biodegradable and compostable packaging materials (boxes, mailers, tape) specifically designed for small to medium e-commerce businesses. The goal is to help small brands reduce their environmental footprint without the high costs of custom sustainable manufacturing. Revenue comes from monthly subscription tiers based on volume.",
		},
		{
			Title:       "AI Personal Stylist",
			Description: "An app that uses computer vision to analyze your current wardrobe and suggest new outfits based on weather and occasion.",
			FullText:    "A mobile application that uses advanced computer vision and AI to catalog a user's existing wardrobe from photos. It then generates daily outfit recommendations based on local weather forecasts, the user's calendar events (work, gym, date night), and current fashion trends. It monetizes through affiliate links to 'missing pieces' and a premium subscription for professional stylist consultations.",
		},
		{
			Title:       "Local Farm-to-Table App",
			Description: "Connecting urban residents directly with local farmers for same-day delivery of fresh produce and dairy products.",
			FullText:    "A hyper-local marketplace app that connects urban dwellers directly with farmers within a 50-mile radius. Users can order fresh produce, dairy, and meat harvested that morning for same-day evening delivery. The platform handles logistics and quality control, taking a 15% commission on sales. It aims to provide farmers with better margins and consumers with fresher food.",
		},
	}
}
