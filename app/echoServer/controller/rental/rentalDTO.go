package rental

type RentReq struct {
	Days int `json:"days" validate:"required,oneof=7 14 21 30"`
}

type ExtendReq struct {
	Days int `json:"days" validate:"required,oneof=7 14"`
}

type RescheduleReq struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}
