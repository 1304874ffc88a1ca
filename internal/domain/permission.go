package domain

// Permissions describes what the current user may do with a given book.
type Permissions struct {
	CanView   bool `json:"canView"`
	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
	CanShare  bool `json:"canShare"`
	IsOwner   bool `json:"isOwner"`
}

// Evaluate computes permissions for currentUserID against a book.
// Anyone may view; only the owner may edit, delete, or change sharing.
func Evaluate(book Book, currentUserID string) Permissions {
	isOwner := book.OwnerID == currentUserID
	return Permissions{
		CanView:   true,
		CanEdit:   isOwner,
		CanDelete: isOwner,
		CanShare:  isOwner,
		IsOwner:   isOwner,
	}
}
