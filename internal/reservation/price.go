package reservation

// TotalPrice sums the hours of every range at hourlyRate.
func TotalPrice(ranges []Range, hourlyRate int64) int64 {
	var total int64
	for _, r := range ranges {
		total += int64(r.Hours()) * hourlyRate
	}
	return total
}
