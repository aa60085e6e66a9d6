package models

import "time"

// Booking status values. All six transitions between them are allowed;
// only moves into or out of confirmed touch the trip's seat count.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
)

// Trip gender restriction values.
const (
	GenderAll    = "all"
	GenderFemale = "female"
)

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusRejected
}

type Activity struct {
	Name     string `json:"name" bson:"name"`
	Hour     string `json:"hour" bson:"hour"`
	Period   string `json:"period" bson:"period"`
	Optional bool   `json:"optional" bson:"optional"`
}

type Trip struct {
	TripID       string     `json:"tripid" bson:"tripid"`
	Destination  string     `json:"destination" bson:"destination"`
	Date         string     `json:"date" bson:"date"` // YYYY-MM-DD
	DurationDays int        `json:"durationDays" bson:"durationDays"`
	Seats        int        `json:"seats" bson:"seats"`
	Gender       string     `json:"gender" bson:"gender"`
	Price        float64    `json:"price" bson:"price"`
	Profit       float64    `json:"profit,omitempty" bson:"profit"`
	Image        string     `json:"image,omitempty" bson:"image,omitempty"`
	Activities   []Activity `json:"activities,omitempty" bson:"activities,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// Public strips admin-only fields before the trip leaves the API.
func (t Trip) Public() Trip {
	t.Profit = 0
	return t
}

// Booking keeps destination and date as a snapshot of the trip at booking
// time so it stays displayable after the trip is edited or deleted. Seat
// accounting always resolves the live trip by TripID, never the snapshot.
type Booking struct {
	BookingID   string    `json:"bookingid" bson:"bookingid"`
	Name        string    `json:"name" bson:"name"`
	Phone       string    `json:"phone" bson:"phone"`
	Address     string    `json:"address" bson:"address"`
	CIN         string    `json:"cin" bson:"cin"`
	Gender      string    `json:"gender" bson:"gender"`
	Age         int       `json:"age" bson:"age"`
	Destination string    `json:"destination" bson:"destination"`
	Date        string    `json:"date" bson:"date"`
	TripID      string    `json:"tripid" bson:"tripid"`
	Status      string    `json:"status" bson:"status"`
	Flag        bool      `json:"flag" bson:"flag"`
	Comment     string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CheckedIn   bool      `json:"checkedIn" bson:"checkedIn"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// FlagEntry marks a traveler by CIN. Absence of an entry means not flagged.
type FlagEntry struct {
	CIN       string    `json:"cin" bson:"cin"`
	RedFlag   bool      `json:"redFlag" bson:"redFlag"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"password,omitempty" bson:"password"`
	Role          []string  `json:"role" bson:"role"`
	CIN           string    `json:"cin,omitempty" bson:"cin,omitempty"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address       string    `json:"address,omitempty" bson:"address,omitempty"`
	Gender        string    `json:"gender,omitempty" bson:"gender,omitempty"`
	Age           int       `json:"age,omitempty" bson:"age,omitempty"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	ResetToken    string    `json:"-" bson:"reset_token,omitempty"`
	ResetExpiry   time.Time `json:"-" bson:"reset_expiry,omitempty"`
	LastLogin     time.Time `json:"-" bson:"last_login,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// Request is a free-text contact request from the public site.
type Request struct {
	RequestID string    `json:"requestid" bson:"requestid"`
	Name      string    `json:"name" bson:"name"`
	CIN       string    `json:"cin,omitempty" bson:"cin,omitempty"`
	Phone     string    `json:"phone" bson:"phone"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Setting struct {
	Key   string `json:"key" bson:"key"`
	Value string `json:"value" bson:"value"`
}
