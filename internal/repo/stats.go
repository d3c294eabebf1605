// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides aggregate statistics used to derive
// cheap cache validators (ETags) for list endpoints.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// PurchasesStats returns the number of purchase rows and the most recent
// updated_at timestamp (nil when the table is empty). The pair changes
// whenever any purchase is created, mutated, or deleted, which makes it a
// suitable weak ETag source for GET /purchases.
func PurchasesStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	var row struct {
		Total      int64
		MaxUpdated *time.Time
	}
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) AS total, MAX(updated_at) AS max_updated FROM purchases").
		Scan(&row).Error
	if err != nil {
		return 0, nil, err
	}
	return row.Total, row.MaxUpdated, nil
}
