package models

import "time"

// Subject is a patient making reservations.
type Subject struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Phone        string    `bson:"phone" json:"phone"`
	Address      Address   `bson:"address" json:"address"`
	DOB          string    `bson:"dob" json:"dob"`
	Gender       string    `bson:"gender" json:"gender"`
	Image        string    `bson:"image" json:"image"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SubjectSnapshot is the immutable subject display data embedded in an
// appointment at booking time.
type SubjectSnapshot struct {
	ID      string  `bson:"id" json:"id"`
	Name    string  `bson:"name" json:"name"`
	Email   string  `bson:"email" json:"email"`
	Phone   string  `bson:"phone" json:"phone"`
	DOB     string  `bson:"dob" json:"dob"`
	Gender  string  `bson:"gender" json:"gender"`
	Address Address `bson:"address" json:"address"`
	Image   string  `bson:"image" json:"image"`
}

// Snapshot captures the subject's display data.
func (s *Subject) Snapshot() SubjectSnapshot {
	return SubjectSnapshot{
		ID:      s.ID,
		Name:    s.Name,
		Email:   s.Email,
		Phone:   s.Phone,
		DOB:     s.DOB,
		Gender:  s.Gender,
		Address: s.Address,
		Image:   s.Image,
	}
}
