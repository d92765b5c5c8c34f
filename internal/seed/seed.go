// Package seed содержит встроенные демонстрационные данные площадки.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Leganyst/myhaircut/internal/model"
)

// Providers возвращает встроенных мастеров, каждый раз свежие копии.
func Providers() []model.Account {
	return []model.Account{
		{
			ID:            "h1",
			Name:          "Ahmed Benzani",
			Email:         "ahmed@example.com",
			Role:          model.RoleProvider,
			IsVerified:    true,
			IsActive:      true,
			AvatarRef:     "https://images.unsplash.com/photo-1503467913725-8484b65b0715?auto=format&fit=crop&q=80&w=200",
			Bio:           "Expert en dégradés et barbes traditionnelles. 10 ans d'expérience à Casablanca.",
			Rating:        4.9,
			ReviewCount:   124,
			WalletBalance: decimal.Zero,
			Services: []model.Service{
				{ID: "s1", Name: "Coupe Homme", Price: decimal.NewFromInt(150), Duration: 30},
				{ID: "s2", Name: "Barbe + Soin", Price: decimal.NewFromInt(80), Duration: 20},
			},
			Gallery: []string{
				"https://images.unsplash.com/photo-1585747860715-2ba37e788b70?auto=format&fit=crop&q=80&w=400",
				"https://images.unsplash.com/photo-1621605815841-2dddbaaaf0b2?auto=format&fit=crop&q=80&w=400",
			},
			Availability: []string{"Lundi - Samedi: 09:00 - 20:00"},
		},
		{
			ID:            "h2",
			Name:          "Sarah El Mansouri",
			Email:         "sarah@example.com",
			Role:          model.RoleProvider,
			IsVerified:    true,
			IsActive:      true,
			AvatarRef:     "https://images.unsplash.com/photo-1580618672591-eb180b1a973f?auto=format&fit=crop&q=80&w=200",
			Bio:           "Spécialiste coloration et soins capillaires pour femmes. Service premium à domicile.",
			Rating:        4.7,
			ReviewCount:   89,
			WalletBalance: decimal.Zero,
			Services: []model.Service{
				{ID: "s3", Name: "Coupe & Brushing", Price: decimal.NewFromInt(250), Duration: 60},
				{ID: "s4", Name: "Coloration complète", Price: decimal.NewFromInt(500), Duration: 120},
			},
			Gallery: []string{
				"https://images.unsplash.com/photo-1522336572468-97b06e8ef143?auto=format&fit=crop&q=80&w=400",
			},
			Availability: []string{"Mardi - Dimanche: 10:00 - 19:00"},
		},
	}
}

// Демонстрационные записи на случай пустого хранилища.
func Bookings() []model.Booking {
	return []model.Booking{
		{
			ID:          "b1",
			ClientID:    "c1",
			ProviderID:  "h1",
			ServiceID:   "s1",
			ServiceName: "Coupe Homme",
			Date:        time.Date(2024, time.May, 20, 14, 30, 0, 0, time.UTC),
			Status:      model.BookingStatusConfirmed,
			TotalPrice:  decimal.NewFromInt(150),
		},
	}
}

// Демонстрационные отзывы с датой now.
func Reviews(now time.Time) []model.Review {
	return []model.Review{
		{
			ID:         "rev1",
			ProviderID: "h1",
			ClientID:   "c1",
			ClientName: "Karim",
			Rating:     5,
			Comment:    "Exceptionnel ! Très pro.",
			Date:       now,
		},
	}
}
