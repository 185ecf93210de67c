package models

// User is the persisted identity. Email is the login and token subject key
// and is unique across users. PasswordHash holds the encoded argon2id hash,
// never the plaintext.
type User struct {
	ID           int64
	Email        string
	DisplayName  string
	PasswordHash string
}

// Public returns a copy without the password hash, safe to hand to callers.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	return &User{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}
