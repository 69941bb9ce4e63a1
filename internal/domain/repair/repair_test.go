package repair_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/repairnotes-api/internal/domain/repair"
)

func TestBucketIndex_Limites(t *testing.T) {
	cases := []struct {
		minutes int64
		want    string
	}{
		{0, "0-2Days"},
		{1440, "0-2Days"},
		{2879, "0-2Days"},
		{2880, "2-5Days"},
		{7199, "2-5Days"},
		{7200, "5-10Days"},
		{10000, "5-10Days"},
		{14400, ">10Days"},
		{20000, ">10Days"},
	}
	for _, tc := range cases {
		idx := repair.BucketIndex(decimal.NewFromInt(tc.minutes))
		assert.Equal(t, tc.want, repair.Buckets[idx].Label, "minutes=%d", tc.minutes)
	}
}

func TestDistribution_IncluyeBucketsVacios(t *testing.T) {
	got := repair.Distribution([]decimal.Decimal{
		decimal.NewFromInt(1440),
		decimal.NewFromInt(100),
		decimal.NewFromInt(30000),
	})
	assert.Equal(t, []int64{2, 0, 0, 1}, got)
}

func TestAverageDays(t *testing.T) {
	assert.Equal(t, int64(0), repair.AverageDays(decimal.NullDecimal{}))
	assert.Equal(t, int64(1), repair.AverageDays(decimal.NewNullDecimal(decimal.NewFromInt(2000))))
	assert.Equal(t, int64(2), repair.AverageDays(decimal.NewNullDecimal(decimal.NewFromInt(2160))), "1.5 días redondea hacia arriba")
	assert.Equal(t, int64(7), repair.AverageDays(decimal.NewNullDecimal(decimal.NewFromInt(10000))))
}

func TestMinutesToDays(t *testing.T) {
	assert.True(t, repair.MinutesToDays(decimal.NewFromInt(2160)).Equal(decimal.NewFromFloat(1.5)))
}
