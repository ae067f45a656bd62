// Package tagsync computes the minimal set of association writes needed to
// bring a product's stored tag links in line with a requested tag list.
//
// The package is pure: it never touches storage. Callers apply the returned
// Changes as one bulk delete and one bulk insert.
package tagsync

import "github.com/phrazzld/catalog-api/internal/domain"

// Changes is the result of Plan. ToInsert and ToRemove never refer to the
// same tag id, so they can be applied in either order.
type Changes struct {
	// ToInsert holds new association rows (ID unset), one per desired tag id
	// that is not linked yet, in the order the ids were first requested.
	ToInsert []domain.ProductTag

	// ToRemove holds the row ids of stored associations whose tag is no
	// longer desired.
	ToRemove []int64
}

// Empty reports whether applying the changes would be a no-op.
func (c Changes) Empty() bool {
	return len(c.ToInsert) == 0 && len(c.ToRemove) == 0
}

// Plan diffs desiredTagIDs against the current associations of productID.
//
// desiredTagIDs is treated as a set: repeated ids produce a single insert.
// Rows in current that already link a desired tag are left untouched. If
// current holds more than one row for the same tag, the first is kept and
// the rest are scheduled for removal so the pairing ends up unique.
func Plan(productID int64, desiredTagIDs []int64, current []domain.ProductTag) Changes {
	desired := make(map[int64]struct{}, len(desiredTagIDs))
	for _, id := range desiredTagIDs {
		desired[id] = struct{}{}
	}

	var changes Changes

	linked := make(map[int64]struct{}, len(current))
	for _, pt := range current {
		_, wanted := desired[pt.TagID]
		_, seen := linked[pt.TagID]
		if !wanted || seen {
			changes.ToRemove = append(changes.ToRemove, pt.ID)
			continue
		}
		linked[pt.TagID] = struct{}{}
	}

	for _, id := range desiredTagIDs {
		if _, ok := linked[id]; ok {
			continue
		}
		// Mark as linked so a repeated id is inserted once.
		linked[id] = struct{}{}
		changes.ToInsert = append(changes.ToInsert, domain.ProductTag{
			ProductID: productID,
			TagID:     id,
		})
	}

	return changes
}

// Apply returns the tag-id set that results from applying changes to
// current. It mirrors what the database will hold and is used to verify
// plans in tests and debug logging.
func Apply(current []domain.ProductTag, changes Changes) []int64 {
	removed := make(map[int64]struct{}, len(changes.ToRemove))
	for _, id := range changes.ToRemove {
		removed[id] = struct{}{}
	}

	result := make([]int64, 0, len(current)+len(changes.ToInsert))
	for _, pt := range current {
		if _, ok := removed[pt.ID]; ok {
			continue
		}
		result = append(result, pt.TagID)
	}
	for _, pt := range changes.ToInsert {
		result = append(result, pt.TagID)
	}
	return result
}
