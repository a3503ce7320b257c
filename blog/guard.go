package blog

// mayMutate reports whether the acting user may update or delete a record
// authored by authorID. Only the author qualifies; there is no moderator
// tier. An anonymous actor (id 0) is always denied.
func mayMutate(actorID, authorID int) bool {
	return actorID != 0 && actorID == authorID
}
