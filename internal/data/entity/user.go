package entity

type User struct {
	Base
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Phone        string `db:"phone"`
	Role         string `db:"role"` // customer, admin
}
