package tradestore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeRecord is the relational form of one execution.
type TradeRecord struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	EventID     string          `gorm:"column:event_id;size:64;uniqueIndex"`
	BuyOrderID  int64           `gorm:"column:buy_order_id"`
	SellOrderID int64           `gorm:"column:sell_order_id"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(20,8)"`
	Quantity    int64           `gorm:"column:quantity"`
	ExecutedAt  time.Time       `gorm:"column:executed_at"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

func (TradeRecord) TableName() string {
	return "trades"
}

func newEventID() string {
	return uuid.New().String()
}
