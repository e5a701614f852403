package tradestore

import (
	"context"

	"gorm.io/gorm"
)

type IRepo interface {
	Trades() ITrade
}

type ITrade interface {
	Create(ctx context.Context, record *TradeRecord) (*TradeRecord, error)
	BulkCreate(ctx context.Context, records []*TradeRecord) ([]*TradeRecord, error)
	CountSince(ctx context.Context, since int64) (int64, error)
}

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) IRepo {
	return &Repo{db: db}
}

func (r *Repo) Trades() ITrade {
	return NewTradeSQLRepo(r.db)
}

type TradeSQLRepo struct {
	db *gorm.DB
}

func NewTradeSQLRepo(db *gorm.DB) *TradeSQLRepo {
	return &TradeSQLRepo{db: db}
}

func (r *TradeSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *TradeSQLRepo) Create(ctx context.Context, record *TradeRecord) (*TradeRecord, error) {
	return record, r.dbWithContext(ctx).Create(record).Error
}

func (r *TradeSQLRepo) BulkCreate(ctx context.Context, records []*TradeRecord) ([]*TradeRecord, error) {
	if len(records) == 0 {
		return records, nil
	}
	return records, r.dbWithContext(ctx).Create(records).Error
}

func (r *TradeSQLRepo) CountSince(ctx context.Context, sinceUnixNs int64) (int64, error) {
	var n int64
	err := r.dbWithContext(ctx).
		Model(&TradeRecord{}).
		Where("executed_at >= to_timestamp(? / 1e9)", sinceUnixNs).
		Count(&n).Error
	return n, err
}
