package domain

import "sort"

// SortOption вариант сортировки каталога по цене
type SortOption string

const (
	SortNone    SortOption = "none"
	SortLowHigh SortOption = "low-high"
	SortHighLow SortOption = "high-low"
)

// SortProducts возвращает отсортированную копию; исходный срез не трогает.
// Сортировка стабильная, чтобы порядок выдачи API сохранялся при равных ценах.
func SortProducts(products []Product, opt SortOption) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	switch opt {
	case SortLowHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortHighLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}
