package domain

import "time"

type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Employee struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	DepartmentID *int64    `json:"departmentID"`
	AvatarURL    *string   `json:"avatarURL"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
