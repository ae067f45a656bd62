package domain

// ProductTag links one product to one tag. At most one row exists for a
// given (ProductID, TagID) pair.
type ProductTag struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	TagID     int64 `json:"tag_id"`
}

// ValidateTagIDs checks that every id in a client-supplied tag list is a
// usable identifier. Duplicates are allowed; callers treat the list as a set.
func ValidateTagIDs(ids []int64) error {
	for _, id := range ids {
		if id <= 0 {
			return NewValidationError("tagIds", "must contain only positive integers", ErrInvalidID)
		}
	}
	return nil
}
