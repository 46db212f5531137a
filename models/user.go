package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. The password hash, verification token and
// reset code never leave the server; they are bson-only fields.
type User struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName               string             `bson:"first_name" json:"firstName"`
	LastName                string             `bson:"last_name" json:"lastName"`
	Email                   string             `bson:"email" json:"email"`
	Phone                   string             `bson:"phone" json:"phone"`
	PasswordHash            string             `bson:"password_hash" json:"-"`
	IsVerified              bool               `bson:"is_verified" json:"isVerified"`
	VerificationToken       string             `bson:"verification_token,omitempty" json:"-"`
	VerificationTokenExpire time.Time          `bson:"verification_token_exp,omitempty" json:"-"`
	ResetCode               int                `bson:"reset_code,omitempty" json:"-"`
	ResetCodeExpire         time.Time          `bson:"reset_code_exp,omitempty" json:"-"`
	CreatedAt               time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt               time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// PublicUser is the subset of User returned by auth endpoints.
type PublicUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	IsVerified bool   `json:"isVerified"`
}

// Public strips the credential fields for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID.Hex(),
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		IsVerified: u.IsVerified,
	}
}
