package admin

import "time"

type SetActiveRequest struct {
	Active bool `json:"active"`
}

type CategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CouponRequest struct {
	Code       string    `json:"code"`
	PercentOff int       `json:"percent_off"`
	Active     bool      `json:"active"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

type CouponResponse struct {
	ID         int       `json:"id"`
	Code       string    `json:"code"`
	PercentOff int       `json:"percent_off"`
	Active     bool      `json:"active"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

type ModerateReviewRequest struct {
	Approve bool `json:"approve"`
}

type SettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
