package store

// Key layout. A handful of logical records, not per-entity rows.
const (
	keyUserID      = "identity:user_id"
	keyDisplayName = "identity:display_name"
	keyPublicBooks = "public:books"
	keyDemoLoaded  = "bootstrap:demo_loaded"

	collectionPrefix = "collection:"
	backupSuffix     = ":backup"
)

// collectionKey returns the primary collection key for a user.
func collectionKey(userID string) []byte {
	return []byte(collectionPrefix + userID)
}

// backupKey returns the backup record key for a user's collection.
func backupKey(userID string) []byte {
	return []byte(collectionPrefix + userID + backupSuffix)
}
