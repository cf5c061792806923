package port

type TokenIssuer interface {
	IssueToken(email string) (string, error)

	// VerifyToken returns the admin email the token was issued for
	VerifyToken(token string) (string, error)
}
