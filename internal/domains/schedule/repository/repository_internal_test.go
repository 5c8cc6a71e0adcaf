package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUpsertQuery(t *testing.T) {
	query := buildUpsertQuery([]string{"id", "booking_id", "frequency", "next_debit_date", "created_at", "modified_at", "created_by", "modified_by"})

	assert.Equal(t,
		"INSERT INTO payment_schedules (id, booking_id, frequency, next_debit_date, created_at, modified_at, created_by, modified_by) "+
			"VALUES (:id, :booking_id, :frequency, :next_debit_date, :created_at, :modified_at, :created_by, :modified_by) "+
			"ON CONFLICT (booking_id) DO UPDATE SET frequency = EXCLUDED.frequency, next_debit_date = EXCLUDED.next_debit_date, "+
			"modified_at = EXCLUDED.modified_at, modified_by = EXCLUDED.modified_by "+
			"RETURNING id, created_at, created_by",
		query,
	)
}
