package domain

import "time"

type User struct {
	ID         string    `json:"id,omitempty"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Registered time.Time `json:"registered"`
}

type Session struct {
	Username string `json:"username"`
	Token    string `json:"token,omitempty"`
	Admin    bool   `json:"admin"`
}

type Stats struct {
	TotalBookings int     `json:"totalBookings"`
	TotalCars     int     `json:"totalCars"`
	TotalUsers    int     `json:"totalUsers"`
	TotalRevenue  float64 `json:"totalRevenue"`
}
