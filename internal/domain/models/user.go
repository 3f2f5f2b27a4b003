// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Portal roles. Managers run school operations, teachers own assignments,
// students see the read-only views.
const (
	RoleManager = "manager"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User represents a portal account (manager, teacher, or student).
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	Role       string             `bson:"role" json:"role"` // manager | teacher | student
	Status     string             `bson:"status,omitempty" json:"status,omitempty"`
	Department string             `bson:"department,omitempty" json:"department,omitempty"`

	// PasswordHash is a bcrypt hash; empty for accounts that have never
	// set a local password.
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CanEditBoard reports whether the user's role may mutate the task board.
// Students get read-only projections.
func (u User) CanEditBoard() bool {
	return u.Role == RoleManager || u.Role == RoleTeacher
}
