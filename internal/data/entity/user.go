package entity

type User struct {
	Record
	Name            string `db:"name"`
	Email           string `db:"email"`
	PasswordHash    string `db:"password"`
	ProfileImageURL string `db:"profile_image_url"`
}

// DisplayName is the name denormalized onto reviews.
func (u *User) DisplayName() string {
	if u == nil || u.Name == "" {
		return "Anonymous"
	}
	return u.Name
}
