package app

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phenrril/carpinteria/internal/domain"
)

func day(y int, m time.Month, d int) domain.Date {
	return domain.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SampleData arma el taller de ejemplo: dos materiales, un producto, un cliente con un
// proyecto en producción y la seña ya cobrada.
func SampleData() domain.Snapshot {
	mdfID, hingeID := uuid.NewString(), uuid.NewString()
	doorID := uuid.NewString()
	clientID, projectID := uuid.NewString(), uuid.NewString()
	created := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

	materials := []domain.Material{
		{
			ID:           mdfID,
			Name:         "MDF 15mm",
			Description:  "Placa de MDF 15mm 2,75x1,83m",
			Category:     "Placas",
			Unit:         "u",
			CurrentStock: money("50"),
			MinStock:     money("10"),
			CurrentPrice: money("85.50"),
			PriceHistory: []domain.PricePoint{
				{Date: day(2024, time.January, 1), Price: money("80")},
				{Date: day(2024, time.February, 1), Price: money("85.50")},
			},
			CreatedAt: created,
		},
		{
			ID:           hingeID,
			Name:         "Bisagra 35mm",
			Description:  "Bisagra cazoleta a presión 35mm",
			Category:     "Herrajes",
			Unit:         "u",
			CurrentStock: money("200"),
			MinStock:     money("50"),
			CurrentPrice: money("12.50"),
			PriceHistory: []domain.PricePoint{
				{Date: day(2024, time.January, 1), Price: money("11")},
				{Date: day(2024, time.February, 1), Price: money("12.50")},
			},
			CreatedAt: created,
		},
	}

	products := []domain.Product{{
		ID:          doorID,
		Name:        "Puerta de alacena 40x60cm",
		Description: "Puerta estándar para mueble de cocina",
		Category:    "Puertas",
		Unit:        "u",
		Components: []domain.Component{
			{MaterialID: mdfID, MaterialName: "MDF 15mm", Quantity: money("0.5"), Unit: "u"},
			{MaterialID: hingeID, MaterialName: "Bisagra 35mm", Quantity: money("2"), Unit: "u"},
		},
		CreatedAt: created,
	}}

	clients := []domain.Client{{
		ID:     clientID,
		Name:   "Juan Pérez",
		Type:   domain.ClientIndividual,
		DNI:    "20.123.456",
		Email:  "juan@correo.com",
		Phone:  "(0341) 433-3333",
		Mobile: "(0341) 15-599-9999",
		Address: domain.Address{
			Country:      "Argentina",
			State:        "Santa Fe",
			City:         "Rosario",
			ZipCode:      "2000",
			Neighborhood: "Centro",
			StreetType:   "Calle",
			Street:       "Córdoba 1234",
		},
		TotalProjects: 1,
		TotalValue:    money("12000"),
		CreatedAt:     time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC),
	}}

	materialsCost, laborCost, margin := money("8000"), money("2000"), money("20")
	projects := []domain.Project{{
		ID:          projectID,
		Number:      1,
		ClientID:    clientID,
		ClientName:  "Juan Pérez",
		Title:       "Cocina a medida",
		Description: "Cocina completa en MDF blanco",
		Status:      domain.ProjectStatusInProduction,
		Type:        domain.ProjectTypeSale,
		Items: []domain.LineItem{{
			ID:          uuid.NewString(),
			ProductID:   doorID,
			ProductName: "Puerta de alacena 40x60cm",
			Quantity:    money("10"),
			UnitPrice:   money("150"),
			TotalPrice:  money("1500"),
		}},
		Budget:        money("12000"),
		StartDate:     day(2024, time.February, 1),
		EndDate:       day(2024, time.March, 15),
		MaterialsCost: &materialsCost,
		LaborCost:     &laborCost,
		ProfitMargin:  &margin,
		PaymentTerms: &domain.PaymentTerms{
			Installments:       3,
			Method:             domain.PaymentCreditCard,
			DiscountPercentage: decimal.Zero,
			InstallmentValue:   money("4000"),
			TotalWithDiscount:  money("12000"),
		},
		CreatedAt: time.Date(2024, time.January, 20, 9, 0, 0, 0, time.UTC),
	}}

	transactions := []domain.Transaction{{
		ID:           uuid.NewString(),
		ProjectID:    projectID,
		ProjectTitle: "Cocina a medida",
		Direction:    domain.DirectionIn,
		Category:     domain.CategoryDeposit,
		Description:  "Seña del proyecto #1 - Cocina a medida",
		Amount:       money("6000"),
		Date:         day(2024, time.February, 1),
		Automatic:    true,
		CreatedAt:    time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC),
	}}

	return domain.Snapshot{
		Clients:      clients,
		Projects:     projects,
		Products:     products,
		Materials:    materials,
		Transactions: transactions,
	}
}
