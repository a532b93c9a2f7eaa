package models

import (
	"errors"
	"strings"
)

// AllCategories is the filter sentinel that disables category filtering.
const AllCategories = "All"

// ErrUnknownCategory is returned for a filter or form value outside Categories.
var ErrUnknownCategory = errors.New("unknown category")

// Categories lists the known category tags in display order. Tags are stored lower-case.
var Categories = []string{
	"technology",
	"lifestyle",
	"travel",
	"food",
	"health",
	"business",
	"art",
}

// IsCategory reports whether tag names a known category, ignoring case.
func IsCategory(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, c := range Categories {
		if c == tag {
			return true
		}
	}
	return false
}

// NormalizeCategory returns the stored form of a category tag.
func NormalizeCategory(tag string) (string, error) {
	if !IsCategory(tag) {
		return "", ErrUnknownCategory
	}
	return strings.ToLower(strings.TrimSpace(tag)), nil
}

// ParseCategoryFilter turns a filter value into the tag to filter on. An empty value or the
// "All" sentinel (any case) yields "" which means no filtering.
func ParseCategoryFilter(filter string) (string, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, AllCategories) {
		return "", nil
	}
	return NormalizeCategory(filter)
}

// CategoryLabels returns the filter list as shown to users, sentinel first.
func CategoryLabels() []string {
	labels := make([]string, 0, len(Categories)+1)
	labels = append(labels, AllCategories)
	for _, c := range Categories {
		labels = append(labels, strings.ToUpper(c[:1])+c[1:])
	}
	return labels
}
