package api

// TokenSource is the durable storage slot for the single current bearer
// token. Every outbound request reads it; login, refresh, and logout write
// it. The platform storage is assumed atomic per call but there is no
// cross-call transaction, so callers must tolerate last-write-wins.
type TokenSource interface {
	Token() string
	SetToken(token string) error
	ClearToken() error
}
