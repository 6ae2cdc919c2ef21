package models

import (
	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/forecast"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BatchModel is the persistence model for the Batch aggregate root.
type BatchModel struct {
	BaseModel
	Name           string          `gorm:"type:varchar(100);not null"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	HiddenCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BatchProduced  int             `gorm:"not null;default:0"`
	BonusRuleCount int             `gorm:"not null;default:0"`
	// Associations
	Scenarios []ScenarioModel `gorm:"foreignKey:BatchID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (BatchModel) TableName() string {
	return "product_batches"
}

// ToDomain converts the persistence model to a domain Batch entity.
func (m *BatchModel) ToDomain() *forecast.Batch {
	return &forecast.Batch{
		BaseEntity:     m.entity(),
		Name:           m.Name,
		UnitCost:       m.UnitCost,
		HiddenCost:     m.HiddenCost,
		Price:          m.Price,
		BatchProduced:  m.BatchProduced,
		BonusRuleCount: m.BonusRuleCount,
	}
}

// FromDomain populates the persistence model from a domain Batch entity.
func (m *BatchModel) FromDomain(b *forecast.Batch) {
	m.BaseModel = baseFrom(b.BaseEntity)
	m.Name = b.Name
	m.UnitCost = b.UnitCost
	m.HiddenCost = b.HiddenCost
	m.Price = b.Price
	m.BatchProduced = b.BatchProduced
	m.BonusRuleCount = b.BonusRuleCount
}

// BatchModelFromDomain creates a new persistence model from a domain Batch entity.
func BatchModelFromDomain(b *forecast.Batch) *BatchModel {
	m := &BatchModel{}
	m.FromDomain(b)
	return m
}

// ScenarioModel is the persistence model for a Scenario. Rows are insert-only.
type ScenarioModel struct {
	BaseModel
	BatchID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExpectedSell       int             `gorm:"not null"`
	HiddenGiven        int             `gorm:"not null"`
	TotalCost          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalRevenue       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Profit             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	MarginPercent      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BreakEvenSellCount int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ScenarioModel) TableName() string {
	return "scenario_estimates"
}

// ToDomain converts the persistence model to a domain Scenario entity.
func (m *ScenarioModel) ToDomain() *forecast.Scenario {
	return &forecast.Scenario{
		BaseEntity:         shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		BatchID:            m.BatchID,
		ExpectedSell:       m.ExpectedSell,
		HiddenGiven:        m.HiddenGiven,
		TotalCost:          m.TotalCost,
		TotalRevenue:       m.TotalRevenue,
		Profit:             m.Profit,
		MarginPercent:      m.MarginPercent,
		BreakEvenSellCount: m.BreakEvenSellCount,
	}
}

// FromDomain populates the persistence model from a domain Scenario entity.
func (m *ScenarioModel) FromDomain(s *forecast.Scenario) {
	m.BaseModel = baseFrom(s.BaseEntity)
	m.BatchID = s.BatchID
	m.ExpectedSell = s.ExpectedSell
	m.HiddenGiven = s.HiddenGiven
	m.TotalCost = s.TotalCost
	m.TotalRevenue = s.TotalRevenue
	m.Profit = s.Profit
	m.MarginPercent = s.MarginPercent
	m.BreakEvenSellCount = s.BreakEvenSellCount
}

// ScenarioModelFromDomain creates a new persistence model from a domain Scenario entity.
func ScenarioModelFromDomain(s *forecast.Scenario) *ScenarioModel {
	m := &ScenarioModel{}
	m.FromDomain(s)
	return m
}
