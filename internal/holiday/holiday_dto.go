package holiday

const dateLayout = "2006-01-02"

type CreateHolidayRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"max=1000"`
	Recurring   bool   `json:"recurring"`
}

type UpdateHolidayRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"max=1000"`
	Recurring   bool   `json:"recurring"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
	Recurring   bool   `json:"recurring"`
}
