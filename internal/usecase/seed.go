package usecase

import "github.com/pinkcart/go-backend/internal/domain"

func ptr[T any](v T) *T {
	return &v
}

// sampleProducts — стартовый набор товаров для пустого каталога.
func sampleProducts() []domain.Product {
	return []domain.Product{
		{
			Name:          "Cute Pink Desk Organizer Set",
			Description:   "Transform your workspace into a cute and organized haven with this adorable pink desk organizer set.",
			Price:         1200,
			OriginalPrice: ptr(int64(2500)),
			Images: []string{
				"/pink-desk-organizer.jpg",
				"/pink-desk-organizer-front-view.jpg",
				"/pink-desk-organizer-side-view.jpg",
				"/pink-desk-organizer-compartments-detail.jpg",
				"/pink-desk-organizer-in-use-on-desk.jpg",
			},
			Video:           "/desk-organizer-product-video-thumbnail.jpg",
			HasVideo:        true,
			Category:        "Organisers",
			JoinedCount:     34,
			MaxParticipants: ptr(int64(50)),
			IsActive:        true,
			Featured:        true,
			InStock:         ptr(true),
			Features:        []string{"Multiple compartments", "Durable plastic", "Easy to clean", "Stackable design"},
			Dimensions:      "25cm x 15cm x 10cm",
			Weight:          "450g",
			Material:        "High-quality ABS plastic",
			Quality:         "Premium grade with smooth finish and sturdy construction",
			ShippingTime:    "3-4 weeks after order closes",
		},
		{
			Name:          "Aesthetic LED Mirror with Hearts",
			Description:   "Light up your beauty routine with this stunning LED mirror featuring adorable heart-shaped lights.",
			Price:         2800,
			OriginalPrice: ptr(int64(4500)),
			Images: []string{
				"/led-mirror-hearts.jpg",
				"/led-mirror-with-hearts-lit-up.jpg",
				"/led-mirror-brightness-settings.jpg",
				"/led-mirror-back-view-with-usb-port.jpg",
				"/led-mirror-on-vanity-table.jpg",
			},
			Video:           "/led-mirror-demo-video-thumbnail.jpg",
			HasVideo:        true,
			Category:        "Cute Lighting",
			JoinedCount:     28,
			MaxParticipants: ptr(int64(40)),
			IsActive:        true,
			Featured:        true,
			InStock:         ptr(true),
			Features:        []string{"Adjustable brightness", "USB powered", "Touch control", "360° rotation"},
			Dimensions:      "30cm x 25cm x 5cm",
			Weight:          "800g",
			Material:        "Glass mirror with ABS plastic frame",
			Quality:         "HD reflection with energy-efficient LED lights",
			ShippingTime:    "3-4 weeks after order closes",
		},
		{
			Name:          "Kawaii Phone Accessories Bundle",
			Description:   "Complete kawaii phone accessory bundle including a cute phone case, pop socket, screen protector, and charging cable organizer.",
			Price:         800,
			OriginalPrice: ptr(int64(1500)),
			Images: []string{
				"/kawaii-phone-accessories.jpg",
				"/kawaii-phone-case-pink.jpg",
				"/kawaii-pop-socket-designs.jpg",
				"/phone-accessories-bundle-contents.jpg",
				"/phone-with-kawaii-accessories.jpg",
			},
			Category:        "Accessories",
			JoinedCount:     45,
			MaxParticipants: ptr(int64(60)),
			IsActive:        true,
			Featured:        true,
			InStock:         ptr(true),
			Features:        []string{"Universal fit", "Strong adhesive", "Reusable", "Cute designs"},
			Dimensions:      "Varies by item",
			Weight:          "150g",
			Material:        "Silicone, tempered glass, plastic",
			Quality:         "Durable materials with cute designs that last",
			ShippingTime:    "3-4 weeks after order closes",
		},
	}
}
