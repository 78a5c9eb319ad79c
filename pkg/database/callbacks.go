package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/pkg/metrics"
)

const startKey = "stockroom:query_start"

func markStart(tx *gorm.DB) {
	tx.InstanceSet(startKey, time.Now())
}

func observe(op string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(startKey)
		if !ok {
			return
		}
		if start, ok := v.(time.Time); ok {
			metrics.ObserveDBQuery(op, tx.Statement.Table, start)
		}
	}
}

// registerMetrics times every create, query, update and delete.
func registerMetrics(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("metrics:before_create", markStart),
		cb.Create().After("gorm:create").Register("metrics:after_create", observe("insert")),
		cb.Query().Before("gorm:query").Register("metrics:before_query", markStart),
		cb.Query().After("gorm:query").Register("metrics:after_query", observe("select")),
		cb.Update().Before("gorm:update").Register("metrics:before_update", markStart),
		cb.Update().After("gorm:update").Register("metrics:after_update", observe("update")),
		cb.Delete().Before("gorm:delete").Register("metrics:before_delete", markStart),
		cb.Delete().After("gorm:delete").Register("metrics:after_delete", observe("delete")),
	)
}
