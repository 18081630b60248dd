package store

// Dictionary queries
const (
	queryUpsertEntry = `
		INSERT INTO dictionary (word, count, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (word) DO UPDATE SET
			count = dictionary.count + 1,
			updated_at = now()
		RETURNING count`
)
