package model

type Classroom struct {
	ID              string `json:"id" validate:"required,uuid4"`
	Code            string `json:"code" validate:"required,min=1,max=50"`
	Capacity        int    `json:"capacity" validate:"min=0"`
	LocationDetails string `json:"location_details"`
	IsOperational   bool   `json:"is_operational"`
}

type ClassroomCreate struct {
	Code            string  `json:"code" validate:"required,min=1,max=50"`
	Capacity        int     `json:"capacity" validate:"min=0"`
	IsOperational   bool    `json:"is_operational"`
	LocationDetails *string `json:"location_details,omitempty"`
}

type ClassroomUpdate struct {
	Code            *string `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Capacity        *int    `json:"capacity,omitempty" validate:"omitempty,min=0"`
	IsOperational   *bool   `json:"is_operational,omitempty"`
	LocationDetails *string `json:"location_details,omitempty"`
}
