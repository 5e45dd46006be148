package models

import "time"

type Review struct {
	ID       int64 `json:"id"`
	ClientID int64 `json:"client_id"`
	CarID    int64 `json:"car_id"`
	// CarName is a snapshot taken at creation time; it is not kept in
	// sync with later car renames.
	CarName    string    `json:"car_name"`
	Comment    string    `json:"comment"`
	ReviewDate time.Time `json:"review_date"`

	Client *ReviewClient `json:"client,omitempty"`
}

// ReviewClient is the partial client projection shown next to a review.
type ReviewClient struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
}
