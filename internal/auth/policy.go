package auth

// The authorization policy is a pair of pure predicates over the
// authenticated account. Self-service operations (own profile, own password,
// own deletion) need only a validated identity and are not gated here.

// CanPublish reports whether the actor may mutate articles and other
// published content. Guests may not.
func CanPublish(actor *Account) bool {
	return actor != nil && !actor.Permission.IsGuest()
}

// CanManageAccounts reports whether the actor may view or change other
// accounts' permission levels. Admins only.
func CanManageAccounts(actor *Account) bool {
	return actor != nil && actor.Permission.IsAdmin()
}
