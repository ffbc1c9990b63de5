package domain

// TokenKind tags a signed token as either a short-lived access credential
// or the longer-lived refresh credential used to mint new access tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)
