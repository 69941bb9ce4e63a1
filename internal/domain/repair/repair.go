// Package repair contiene las reglas de conversión y agrupación de tiempos de reparación.
package repair

import "github.com/shopspring/decimal"

// MinutesPerDay minutos en un día.
const MinutesPerDay = 1440

var minutesPerDay = decimal.NewFromInt(MinutesPerDay)

// Bucket rango [Min, Max) de minutos de reparación. Max nil = sin límite superior.
type Bucket struct {
	Label string
	Min   int64
	Max   *int64
}

func bound(v int64) *int64 { return &v }

// Buckets límites fijos 0, 2880, 7200, 14400 (0-2, 2-5, 5-10 y más de 10 días).
var Buckets = []Bucket{
	{Label: "0-2Days", Min: 0, Max: bound(2880)},
	{Label: "2-5Days", Min: 2880, Max: bound(7200)},
	{Label: "5-10Days", Min: 7200, Max: bound(14400)},
	{Label: ">10Days", Min: 14400},
}

// BucketIndex índice en Buckets para minutes. Valores negativos caen en el primero.
func BucketIndex(minutes decimal.Decimal) int {
	for i, b := range Buckets {
		if b.Max == nil || minutes.LessThan(decimal.NewFromInt(*b.Max)) {
			return i
		}
	}
	return len(Buckets) - 1
}

// Distribution cuenta cuántos valores caen en cada bucket (incluye buckets vacíos).
func Distribution(minutes []decimal.Decimal) []int64 {
	counts := make([]int64, len(Buckets))
	for _, m := range minutes {
		counts[BucketIndex(m)]++
	}
	return counts
}

// MinutesToDays convierte minutos a días (sin redondear).
func MinutesToDays(minutes decimal.Decimal) decimal.Decimal {
	return minutes.Div(minutesPerDay)
}

// AverageDays convierte un promedio en minutos a días redondeados al entero más cercano.
// Un promedio nulo (sin reparaciones) da 0.
func AverageDays(avgMinutes decimal.NullDecimal) int64 {
	if !avgMinutes.Valid {
		return 0
	}
	return MinutesToDays(avgMinutes.Decimal).Round(0).IntPart()
}
