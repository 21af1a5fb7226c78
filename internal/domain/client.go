package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ClientType string

const (
	ClientIndividual ClientType = "individual"
	ClientCompany    ClientType = "company"
)

type Address struct {
	Country      string `json:"country"`
	State        string `json:"state"`
	City         string `json:"city"`
	ZipCode      string `json:"zip_code"`
	Neighborhood string `json:"neighborhood"`
	StreetType   string `json:"street_type"`
	Street       string `json:"street"`
}

// Client: TotalProjects y TotalValue son acumulados que sólo mueve la creación de proyectos.
type Client struct {
	ID            string          `json:"id"`
	Name          string          `json:"name" validate:"required,max=140"`
	Type          ClientType      `json:"type" validate:"required,oneof=individual company"`
	DNI           string          `json:"dni,omitempty" validate:"max=30"`  // persona física
	CUIT          string          `json:"cuit,omitempty" validate:"max=30"` // persona jurídica
	Email         string          `json:"email" validate:"omitempty,email"`
	Phone         string          `json:"phone" validate:"max=60"`
	Mobile        string          `json:"mobile" validate:"max=60"`
	Address       Address         `json:"address"`
	TotalProjects int             `json:"total_projects"`
	TotalValue    decimal.Decimal `json:"total_value"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TaxID devuelve el identificador fiscal que corresponde al tipo de cliente.
func (c Client) TaxID() string {
	if c.Type == ClientCompany {
		return c.CUIT
	}
	return c.DNI
}

type ClientPatch struct {
	Name    *string     `json:"name"`
	Type    *ClientType `json:"type"`
	DNI     *string     `json:"dni"`
	CUIT    *string     `json:"cuit"`
	Email   *string     `json:"email"`
	Phone   *string     `json:"phone"`
	Mobile  *string     `json:"mobile"`
	Address *Address    `json:"address"`
}

func (p ClientPatch) Apply(c *Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.DNI != nil {
		c.DNI = *p.DNI
	}
	if p.CUIT != nil {
		c.CUIT = *p.CUIT
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Mobile != nil {
		c.Mobile = *p.Mobile
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
}

type ClientFilter struct {
	Query string
	Type  ClientType
}
