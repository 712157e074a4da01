package repository

// withVisibility appends the default tombstone exclusion unless the caller
// explicitly asked for deleted rows. Every list/count/lookup that does not
// filter on is_deleted itself goes through here.
func withVisibility(clauses []string, includeDeleted bool) []string {
	if includeDeleted {
		return clauses
	}
	return append(clauses, "is_deleted = FALSE")
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
