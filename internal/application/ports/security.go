package ports

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// Identity is the authenticated caller resolved from a session token.
type Identity struct {
	UserID string
	Email  string
}

// TokenIssuer signs and validates session tokens. Signing is stateless;
// rotating the secret invalidates all outstanding tokens.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
	Verify(tokenString string) (Identity, error)
}
