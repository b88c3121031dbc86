package models

import (
	"github.com/printshop/backend/internal/domain/catalog"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// ProductModel is the persistence model for catalog products.
type ProductModel struct {
	BaseModel
	Name      string            `gorm:"type:varchar(200);not null;index"`
	SalePrice valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	Unit      string            `gorm:"type:varchar(50)"`
	Active    bool              `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		SalePrice:  m.SalePrice,
		Unit:       m.Unit,
		Active:     m.Active,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.SalePrice = p.SalePrice
	m.Unit = p.Unit
	m.Active = p.Active
}
