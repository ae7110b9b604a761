package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/Jovalentine/Digi-market/internal/domain"
)

func usd(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func listPrice(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// SeedProducts returns the storefront's product range in display order.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:            "1",
			Name:          "Premium UI Kit",
			Price:         usd(49),
			OriginalPrice: listPrice(69),
			Description:   "A comprehensive UI kit with over 300 components, perfect for modern web applications and digital products.",
			Features: []string{
				"300+ UI components",
				"Light and dark mode",
				"Figma source files",
				"Lifetime updates",
				"Premium support",
			},
			ImageURL:     "https://images.pexels.com/photos/5483077/pexels-photo-5483077.jpeg",
			Category:     "Design",
			Subcategory:  "UI Kits",
			Rating:       4.9,
			ReviewCount:  124,
			Tags:         []string{"UI", "Design", "Frontend"},
			IsFeatured:   true,
			IsBestSeller: true,
			IsOnSale:     true,
		},
		{
			ID:            "2",
			Name:          "Developer Toolkit Pro",
			Price:         usd(79),
			OriginalPrice: listPrice(99),
			Description:   "The ultimate developer toolkit with everything you need to build robust applications faster than ever.",
			Features: []string{
				"Code snippets for multiple languages",
				"VS Code extensions",
				"Docker templates",
				"CI/CD workflow helpers",
				"Performance optimization tools",
			},
			ImageURL:    "https://images.pexels.com/photos/2004161/pexels-photo-2004161.jpeg",
			Category:    "Development",
			Subcategory: "Tools",
			Rating:      4.8,
			ReviewCount: 89,
			Tags:        []string{"Development", "Tools", "Productivity"},
			IsFeatured:  true,
			IsOnSale:    true,
		},
		{
			ID:            "3",
			Name:          "SEO Master Course",
			Price:         usd(129),
			OriginalPrice: listPrice(199),
			Description:   "Learn everything about SEO in this comprehensive course. Boost your website ranking and drive more traffic.",
			Features: []string{
				"10+ hours of video content",
				"Practical exercises",
				"SEO audit templates",
				"Keyword research tools",
				"Certificate of completion",
			},
			ImageURL:     "https://images.pexels.com/photos/905163/pexels-photo-905163.jpeg",
			Category:     "Courses",
			Subcategory:  "Marketing",
			Rating:       4.7,
			ReviewCount:  213,
			Tags:         []string{"SEO", "Marketing", "Course"},
			IsBestSeller: true,
		},
		{
			ID:            "4",
			Name:          "WordPress Theme Bundle",
			Price:         usd(59),
			OriginalPrice: listPrice(89),
			Description:   "A collection of 10 premium WordPress themes suitable for various industries and purposes.",
			Features: []string{
				"10 premium themes",
				"Lifetime updates",
				"Premium plugins included",
				"Responsive design",
				"SEO optimized",
			},
			ImageURL:    "https://images.pexels.com/photos/6476808/pexels-photo-6476808.jpeg",
			Category:    "WordPress",
			Subcategory: "Themes",
			Rating:      4.6,
			ReviewCount: 156,
			Tags:        []string{"WordPress", "Themes", "Web Design"},
			IsOnSale:    true,
		},
		{
			ID:            "5",
			Name:          "Social Media Marketing Guide",
			Price:         usd(39),
			OriginalPrice: listPrice(59),
			Description:   "A comprehensive guide on how to leverage social media for business growth and brand awareness.",
			Features: []string{
				"Strategy templates",
				"Content calendar",
				"Analytics tracking sheets",
				"Campaign ideas",
				"Case studies",
			},
			ImageURL:    "https://images.pexels.com/photos/6177645/pexels-photo-6177645.jpeg",
			Category:    "Marketing",
			Subcategory: "Social Media",
			Rating:      4.5,
			ReviewCount: 98,
			Tags:        []string{"Marketing", "Social Media", "Guide"},
		},
		{
			ID:          "6",
			Name:        "E-commerce Business Plan",
			Price:       usd(89),
			Description: "A detailed business plan template for launching and growing your e-commerce business successfully.",
			Features: []string{
				"Financial projections",
				"Market analysis",
				"Marketing strategy",
				"Operations plan",
				"Risk assessment",
			},
			ImageURL:    "https://images.pexels.com/photos/230544/pexels-photo-230544.jpeg",
			Category:    "Business",
			Subcategory: "Planning",
			Rating:      4.7,
			ReviewCount: 76,
			Tags:        []string{"Business", "E-commerce", "Planning"},
		},
		{
			ID:          "7",
			Name:        "Video Editing Master Class",
			Price:       usd(149),
			Description: "Learn professional video editing techniques and create stunning videos for various platforms.",
			Features: []string{
				"15 hours of video content",
				"Project files included",
				"Advanced editing techniques",
				"Color grading tutorials",
				"Special effects",
			},
			ImageURL:    "https://images.pexels.com/photos/2608519/pexels-photo-2608519.jpeg",
			Category:    "Courses",
			Subcategory: "Video",
			Rating:      4.8,
			ReviewCount: 124,
			Tags:        []string{"Video", "Editing", "Course"},
			IsFeatured:  true,
		},
		{
			ID:            "8",
			Name:          "Logo Design Templates",
			Price:         usd(29),
			OriginalPrice: listPrice(49),
			Description:   "A collection of 50 premium logo design templates for various industries and businesses.",
			Features: []string{
				"50 logo templates",
				"Fully customizable",
				"AI and PSD files",
				"Commercial license",
				"Free updates",
			},
			ImageURL:    "https://images.pexels.com/photos/6802042/pexels-photo-6802042.jpeg",
			Category:    "Design",
			Subcategory: "Logos",
			Rating:      4.5,
			ReviewCount: 87,
			Tags:        []string{"Logo", "Design", "Templates"},
			IsOnSale:    true,
		},
	}
}

// SeedReviews returns the published reviews keyed by product id, newest
// first.
func SeedReviews() map[string][]domain.Review {
	return map[string][]domain.Review{
		"1": {
			{ID: "r1", UserID: "u1", UserName: "Alex Johnson", UserAvatar: "https://randomuser.me/api/portraits/men/32.jpg", Rating: 5,
				Text: "This UI kit is absolutely incredible. The components are well designed and extremely easy to use. Saved me hours of development time!", Date: "2023-11-15"},
			{ID: "r2", UserID: "u2", UserName: "Sarah Parker", UserAvatar: "https://randomuser.me/api/portraits/women/44.jpg", Rating: 5,
				Text: "Perfect for my startup project. The design is clean, modern and very professional. Highly recommended!", Date: "2023-10-23"},
			{ID: "r3", UserID: "u3", UserName: "Michael Chen", Rating: 4,
				Text: "Great quality overall. Would be perfect with more industry-specific components, but the existing ones are excellent.", Date: "2023-09-30"},
		},
		"2": {
			{ID: "r4", UserID: "u4", UserName: "David Wilson", UserAvatar: "https://randomuser.me/api/portraits/men/67.jpg", Rating: 5,
				Text: "This toolkit has transformed my development workflow. The code snippets are extremely useful and well documented.", Date: "2023-11-05"},
			{ID: "r5", UserID: "u5", UserName: "Emily Rodriguez", Rating: 4,
				Text: "Very comprehensive toolkit with useful resources. Some of the Docker templates needed slight modifications for my use case, but overall great value.", Date: "2023-10-18"},
		},
		"3": {
			{ID: "r6", UserID: "u6", UserName: "Jessica Williams", UserAvatar: "https://randomuser.me/api/portraits/women/63.jpg", Rating: 5,
				Text: "This course completely transformed my understanding of SEO. My website traffic has doubled since implementing the strategies taught here.", Date: "2023-11-20"},
			{ID: "r7", UserID: "u7", UserName: "Robert Garcia", Rating: 5,
				Text: "Comprehensive content with practical examples. The instructor explains complex concepts in an easy-to-understand way.", Date: "2023-10-12"},
			{ID: "r8", UserID: "u8", UserName: "Lisa Thompson", UserAvatar: "https://randomuser.me/api/portraits/women/26.jpg", Rating: 4,
				Text: "Great course with actionable strategies. Would appreciate more case studies, but the content is excellent.", Date: "2023-09-28"},
		},
	}
}
