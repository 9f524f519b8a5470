package usecase

import "time"

// CalculateRefund menghitung refund berdasarkan jarak waktu ke keberangkatan.
// Pure function: deterministic untuk (departureAt, now, totalAmount).
//
//	> 24 jam sebelum berangkat : 90%
//	> 2 sampai 24 jam          : 50%
//	<= 2 jam (termasuk lewat)  : 0
func CalculateRefund(departureAt, now time.Time, totalAmount float64) float64 {
	hoursUntilDeparture := departureAt.Sub(now).Hours()

	switch {
	case hoursUntilDeparture > 24:
		return totalAmount * 0.9
	case hoursUntilDeparture > 2:
		return totalAmount * 0.5
	default:
		return 0
	}
}
